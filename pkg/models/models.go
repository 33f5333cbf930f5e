package models

import "time"

// Frame is one hop of the pitch estimator's output: the time of the hop,
// the estimated fundamental frequency and how certain the model is about it.
type Frame struct {
	Time       float64 // seconds from the start of the audio
	Hz         float64 // estimated frequency in hertz
	Confidence float64 // certainty in [0, 1]
}

// Result summarises one pitching run.
type Result struct {
	OutputPath string        // path of the written karaoke file
	Pitched    int           // notes that received a confident pitch
	Defaulted  int           // notes that fell back to the neutral pitch 0
	Frames     int           // total frames produced by the estimator
	Elapsed    time.Duration // wall-clock time of the whole run
}
