package engine

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for sprite sheets and backgrounds
	"io/fs"
	"sync"
)

// Loader fetches game assets. Every method is called only during
// initialization; failures are fatal to startup.
type Loader interface {
	LoadImage(ctx context.Context, path string) (image.Image, error)
	FetchSheet(ctx context.Context, path string) (Sheet, error)
	LoadSound(ctx context.Context, path string) (Sound, error)
}

// FSLoader loads assets from a file system: the embedded pack or a directory.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader reading from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// LoadImage decodes an image file.
func (l *FSLoader) LoadImage(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot decode image %s: %w", path, err)
	}
	return img, nil
}

// FetchSheet reads and parses a sprite sheet descriptor.
func (l *FSLoader) FetchSheet(ctx context.Context, path string) (Sheet, error) {
	if err := ctx.Err(); err != nil {
		return Sheet{}, err
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Sheet{}, fmt.Errorf("engine: cannot read sheet %s: %w", path, err)
	}
	sheet, err := ParseSheet(data)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// LoadSound decodes and buffers a WAV file.
func (l *FSLoader) LoadSound(ctx context.Context, path string) (Sound, error) {
	if err := ctx.Err(); err != nil {
		return Sound{}, err
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return Sound{}, fmt.Errorf("engine: cannot open sound %s: %w", path, err)
	}
	defer f.Close()

	sound, err := DecodeSound(f)
	if err != nil {
		return Sound{}, fmt.Errorf("%s: %w", path, err)
	}
	return sound, nil
}

// CachingLoader remembers every asset the wrapped loader returned, so games
// started repeatedly from one process decode each file once. Failures are
// not cached. It is safe for concurrent use.
type CachingLoader struct {
	next Loader

	mu     sync.Mutex
	images map[string]image.Image
	sheets map[string]Sheet
	sounds map[string]Sound
}

// NewCachingLoader wraps next.
func NewCachingLoader(next Loader) *CachingLoader {
	return &CachingLoader{
		next:   next,
		images: make(map[string]image.Image),
		sheets: make(map[string]Sheet),
		sounds: make(map[string]Sound),
	}
}

// LoadImage implements Loader.
func (l *CachingLoader) LoadImage(ctx context.Context, path string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.images[path]; ok {
		return img, nil
	}
	img, err := l.next.LoadImage(ctx, path)
	if err != nil {
		return nil, err
	}
	l.images[path] = img
	return img, nil
}

// FetchSheet implements Loader.
func (l *CachingLoader) FetchSheet(ctx context.Context, path string) (Sheet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sheet, ok := l.sheets[path]; ok {
		return sheet, nil
	}
	sheet, err := l.next.FetchSheet(ctx, path)
	if err != nil {
		return Sheet{}, err
	}
	l.sheets[path] = sheet
	return sheet, nil
}

// LoadSound implements Loader.
func (l *CachingLoader) LoadSound(ctx context.Context, path string) (Sound, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sound, ok := l.sounds[path]; ok {
		return sound, nil
	}
	sound, err := l.next.LoadSound(ctx, path)
	if err != nil {
		return Sound{}, err
	}
	l.sounds[path] = sound
	return sound, nil
}

// LoadSpriteSheet fetches a descriptor and its image and pairs them.
func LoadSpriteSheet(ctx context.Context, l Loader, sheetPath, imagePath string) (*SpriteSheet, error) {
	sheet, err := l.FetchSheet(ctx, sheetPath)
	if err != nil {
		return nil, err
	}
	img, err := l.LoadImage(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	return NewSpriteSheet(sheet, img), nil
}
