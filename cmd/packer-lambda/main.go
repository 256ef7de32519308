// Command packer-lambda serves the line processor behind an AWS Lambda
// Function URL. Logs are JSON on stderr (CloudWatch); PACKER_LOG_LEVEL sets
// the level.
package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/katalvlaran/packer/lambdafn"
	"github.com/katalvlaran/packer/lineproc"
)

func main() {
	level, err := lineproc.ParseLevel(os.Getenv("PACKER_LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}
	logger := lineproc.NewLogger(os.Stderr, level, true)

	h := lambdafn.New(logger, lineproc.WithLimits(lineproc.DefaultLimits()))
	lambda.Start(h.Handle)
}
