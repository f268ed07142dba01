package main

import (
	"github.com/kaleshlabs/stagehand/cmd"
	"github.com/kaleshlabs/stagehand/pkg/logger"
	"github.com/kaleshlabs/stagehand/pkg/telemetry"
)

func main() {
	logger.Initialize()

	if err := telemetry.Init("stagehand"); err != nil {
		logger.L().Warn("Telemetry disabled: " + err.Error())
	}

	cmd.Execute()
}
