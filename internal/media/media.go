package media

import (
	"context"
)

// ExtractAudioCached extracts audio through the cache: a hit is linked into
// outputPath without running ffmpeg, a miss extracts and populates the
// cache. A nil cache always extracts.
func ExtractAudioCached(ctx context.Context, extractor *Extractor, cache *Cache, videoPath, outputPath string, opts ExtractOptions) (bool, error) {
	if cache == nil {
		return false, extractor.ExtractAudio(ctx, videoPath, outputPath, opts)
	}

	key, err := cache.Key(videoPath, opts)
	if err != nil {
		return false, err
	}

	if cached, ok, err := cache.Lookup(key); err != nil {
		return false, err
	} else if ok {
		return true, LinkOrCopy(cached, outputPath)
	}

	if err := extractor.ExtractAudio(ctx, videoPath, outputPath, opts); err != nil {
		return false, err
	}
	if _, err := cache.Store(key, outputPath); err != nil {
		return false, err
	}
	return false, nil
}
