// Package tokenizer estimates how many model tokens a transcript will cost
// the backend's analysis step.
package tokenizer

import (
	"sync"
	"sync/atomic"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE used for estimates.
const DefaultEncoding = "cl100k_base"

// Tokenizer 转录 token 估算器，支持 tiktoken 和启发式回退
// Tokenizer estimates transcript tokens with tiktoken and a heuristic fallback
type Tokenizer struct {
	encodingName string

	once    sync.Once
	ready   atomic.Bool
	mu      sync.RWMutex
	encoder *tiktoken.Tiktoken
}

var (
	defaultTokenizer     *Tokenizer
	defaultTokenizerOnce sync.Once
)

// Default 返回全局默认实例
// Default returns the shared tokenizer
func Default() *Tokenizer {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer = New(DefaultEncoding)
	})
	return defaultTokenizer
}

// New 创建 tokenizer；编码在 Warm 或 Load 时加载
// New creates a tokenizer; the encoding is loaded by Warm or Load
func New(encodingName string) *Tokenizer {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	return &Tokenizer{encodingName: encodingName}
}

// Heuristic returns a tokenizer that never loads a BPE.
func Heuristic() *Tokenizer {
	t := &Tokenizer{encodingName: DefaultEncoding}
	t.once.Do(func() { t.ready.Store(true) })
	return t
}

// Warm loads the encoding in the background. Counts use the heuristic
// until it is ready.
func (t *Tokenizer) Warm() {
	go t.Load()
}

// Load blocks until the encoding is loaded or known to be unavailable.
func (t *Tokenizer) Load() {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encodingName)
		if err == nil {
			t.mu.Lock()
			t.encoder = enc
			t.mu.Unlock()
		}
		// 离线环境可能没有 BPE 缓存，保持启发式
		// offline environments may lack the BPE cache; stay heuristic
		t.ready.Store(true)
	})
}

// Count 计算文本的 token 数；从不阻塞
// Count returns the token count of text without blocking
func (t *Tokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	if !t.ready.Load() {
		return heuristicTokenCount(text)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.encoder == nil {
		return heuristicTokenCount(text)
	}
	return len(t.encoder.Encode(text, nil, nil))
}

// IsPrecise reports whether counts come from the real encoding.
func (t *Tokenizer) IsPrecise() bool {
	if !t.ready.Load() {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.encoder != nil
}

func (t *Tokenizer) EncodingName() string {
	return t.encodingName
}

// heuristicTokenCount 启发式估算：CJK 约 1.5 token/字，其余约 4 字符/token
// heuristicTokenCount estimates ~1.5 tokens per CJK rune and ~4 chars per token otherwise
func heuristicTokenCount(text string) int {
	if text == "" {
		return 0
	}
	cjkCount := 0
	otherCount := 0
	for _, r := range text {
		if isCJK(r) {
			cjkCount++
		} else {
			otherCount++
		}
	}
	estimate := int(float64(cjkCount)*1.5 + float64(otherCount)*0.25)
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x3000 && r <= 0x303F) || // CJK Symbols
		(r >= 0xFF00 && r <= 0xFFEF) || // Fullwidth Forms
		(r >= 0xAC00 && r <= 0xD7AF) // Hangul
}
