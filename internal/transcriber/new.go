package transcriber

import (
	"fmt"

	"subflow/internal/config"
	"subflow/internal/logger"
	"subflow/pkg/executor"
)

// New builds the configured transcription backend.
func New(exec executor.Executor, log logger.Logger, cfg config.WhisperConfig) (Transcriber, error) {
	switch cfg.Backend {
	case "local":
		if cfg.ModelPath == "" {
			return nil, fmt.Errorf("transcriber: whisper.model_path is required for the local backend")
		}
		return NewLocal(exec, log, cfg), nil
	case "api":
		return NewAPI(log, cfg)
	default:
		return nil, fmt.Errorf("unknown whisper backend %q", cfg.Backend)
	}
}
