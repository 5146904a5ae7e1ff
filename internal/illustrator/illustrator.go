// Package illustrator maps text prompts to locally cached images, generating
// them through an image model only on a cache miss.
package illustrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageGenerator renders a prompt into encoded image bytes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Config holds configuration for the Illustrator.
type Config struct {
	// Dir is the cache root holding original/, compressed/ and prompt_map.json.
	Dir string

	// Generator is called on cache misses. A nil generator makes misses fail
	// with ErrMissingAPIKey while cached prompts still resolve.
	Generator ImageGenerator

	// MaxDimension downsamples compressed images whose width or height
	// exceeds it. Zero keeps the original size.
	MaxDimension int
}

// Illustrator resolves prompts to compressed image paths.
type Illustrator struct {
	mu sync.Mutex

	originalDir   string
	compressedDir string
	generator     ImageGenerator
	compress      CompressOptions
	prompts       *PromptMap
}

// New creates an Illustrator over the cache at cfg.Dir.
func New(cfg Config) *Illustrator {
	return &Illustrator{
		originalDir:   filepath.Join(cfg.Dir, "original"),
		compressedDir: filepath.Join(cfg.Dir, "compressed"),
		generator:     cfg.Generator,
		compress:      CompressOptions{MaxDimension: cfg.MaxDimension},
		prompts:       LoadPromptMap(filepath.Join(cfg.Dir, "prompt_map.json")),
	}
}

// Hash returns the cache key of a prompt.
func Hash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Paths returns the original and compressed image paths for a prompt hash.
func (il *Illustrator) Paths(hash string) (original, compressed string) {
	return filepath.Join(il.originalDir, hash+".png"), filepath.Join(il.compressedDir, hash+".jpg")
}

// Resolve returns the path of the compressed image for prompt, generating it
// when neither the compressed nor the original image is cached. A blank
// prompt resolves to "" without touching the cache.
func (il *Illustrator) Resolve(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", nil
	}

	il.mu.Lock()
	defer il.mu.Unlock()

	hash := Hash(prompt)
	original, compressed := il.Paths(hash)

	if err := il.prompts.Add(hash, prompt); err != nil {
		return "", fmt.Errorf("record prompt: %w", err)
	}

	if exists(compressed) {
		slog.Info("image already exists, skipping generation", "path", compressed)
		return compressed, nil
	}

	if exists(original) {
		slog.Info("original image exists, compressing", "path", original)
		if err := Compress(original, compressed, il.compress); err != nil {
			return "", err
		}
		return compressed, nil
	}

	if il.generator == nil {
		return "", ErrMissingAPIKey
	}

	slog.Info("generating image", "hash", hash[:12], "prompt", prompt)
	data, err := il.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(il.originalDir, 0755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}
	if err := os.WriteFile(original, data, 0644); err != nil {
		return "", fmt.Errorf("write original image: %w", err)
	}

	if err := Compress(original, compressed, il.compress); err != nil {
		return "", err
	}
	return compressed, nil
}

// Cached reports whether prompt resolves without calling the generator.
func (il *Illustrator) Cached(prompt string) bool {
	original, compressed := il.Paths(Hash(prompt))
	return exists(compressed) || exists(original)
}

// CacheStats summarizes the image cache.
type CacheStats struct {
	Prompts    int
	Originals  int
	Compressed int
}

// Stats counts cached images and recorded prompts.
func (il *Illustrator) Stats() (CacheStats, error) {
	il.mu.Lock()
	defer il.mu.Unlock()

	originals, err := countFiles(il.originalDir, ".png")
	if err != nil {
		return CacheStats{}, err
	}
	compressed, err := countFiles(il.compressedDir, ".jpg")
	if err != nil {
		return CacheStats{}, err
	}

	return CacheStats{
		Prompts:    il.prompts.Len(),
		Originals:  originals,
		Compressed: compressed,
	}, nil
}

func countFiles(dir, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			n++
		}
	}
	return n, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
