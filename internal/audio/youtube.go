package audio

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
)

// DownloadAudio fetches the audio track of a YouTube video into dir as a
// WAV file and returns its path. Requires yt-dlp on PATH.
func DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	outputPath := filepath.Join(dir, uuid.NewString()+".wav")

	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat("wav").
		Output(outputPath)

	if _, err := dl.Run(ctx, url); err != nil {
		return "", &DecodeError{Path: url, Err: err}
	}
	return outputPath, nil
}
