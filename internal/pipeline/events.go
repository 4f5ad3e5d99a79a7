package pipeline

// Stage names, in pipeline order.
const (
	StageDownload   = "download"
	StageAudio      = "audio"
	StageTranscribe = "transcribe"
	StageTranslate  = "translate"
	StageSave       = "save"
)

// Event is one progress report from a running pipeline. Progress is 0..1
// within the stage.
type Event struct {
	Stage    string         `json:"stage"`
	Progress float64        `json:"progress"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
}

// EventFunc receives events as the pipeline advances. Callbacks run on the
// pipeline goroutine and must not block.
type EventFunc func(Event)
