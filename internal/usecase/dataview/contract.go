package dataview

import "time"

// Observer receives per-call measurements. Implemented by the metrics package.
type Observer interface {
	ObserveApply(schema string, duration time.Duration, filtered int)
	ObserveUnknownFields(schema, kind string, count int)
}

type nopObserver struct{}

func (nopObserver) ObserveApply(string, time.Duration, int)  {}
func (nopObserver) ObserveUnknownFields(string, string, int) {}
