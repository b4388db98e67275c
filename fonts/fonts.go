package fonts

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrNotRegistered 表示请求的 (family, weight, style) 组合没有对应的字体程序。
var ErrNotRegistered = errors.New("fonts: 字体未注册")

// Key 唯一标识一个字体面：族名 + 字重 + 是否斜体。
type Key struct {
	Family string
	Weight int
	Italic bool
}

// Set 保存进程级字体资源。启动阶段通过 Register 写入，之后只读，
// 可被并发渲染安全共享。
type Set struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

// NewSet 创建空字体集。
func NewSet() *Set {
	return &Set{entries: map[Key][]byte{}}
}

// Register 注册一个字体程序（TTF/OTF 字节）。重复注册时后者覆盖前者。
func (s *Set) Register(family string, weight int, italic bool, data []byte) error {
	if family == "" {
		return fmt.Errorf("fonts: 字体族名不能为空")
	}
	if len(data) == 0 {
		return fmt.Errorf("fonts: 字体 %s 数据为空", family)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[Key{Family: family, Weight: weight, Italic: italic}] = data
	return nil
}

// RegisterFile 从磁盘读取字体文件并注册。
func (s *Set) RegisterFile(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fonts: 读取字体文件 %s 失败: %w", path, err)
	}
	return s.Register(family, weight, italic, data)
}

// Lookup 返回匹配的字体程序；不存在时返回 ErrNotRegistered。
// 没有任何回退逻辑：无头渲染环境里字体必须显式注册。
func (s *Set) Lookup(family string, weight int, italic bool) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[Key{Family: family, Weight: weight, Italic: italic}]
	if !ok {
		return nil, fmt.Errorf("%w: %s (weight=%d italic=%v)", ErrNotRegistered, family, weight, italic)
	}
	return data, nil
}

// Has 报告某个字体面是否已注册。
func (s *Set) Has(family string, weight int, italic bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[Key{Family: family, Weight: weight, Italic: italic}]
	return ok
}
