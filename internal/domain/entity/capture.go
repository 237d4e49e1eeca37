// internal/domain/entity/capture.go
package entity

// RawCapture is the ephemeral input produced by one scan event. It is created
// per capture and consumed immediately by the pipeline.
type RawCapture struct {
	Source      CaptureSource
	BarcodeType string
	Payload     string
}
