// Package chance - единственный источник случайности в системе.
// Все вероятностные решения движков проходят через Source,
// что позволяет подменять его детерминированным в тестах.
package chance

import (
	"math/rand"
	"sync"
	"time"
)

// Source - источник равномерных случайных чисел
type Source interface {
	// Intn возвращает равномерное число в [0, n), n > 0
	Intn(n int) int
}

// lockedSource сериализует обращения к rand.Rand: один источник
// делится между движками, обслуживающими конкурентные запросы,
// а сам rand.Rand к конкурентным вызовам не готов
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewSource создает источник с фиксированным сидом
func NewSource(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// TimeSource создает источник, засеянный текущим временем
func TimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

// Resolve решает исход с вероятностью percent/100.
// Схема фиксирована: бросок в [0, 100), успех если бросок < percent.
// percent <= 0 всегда false, percent >= 100 всегда true
func Resolve(percent int, src Source) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return src.Intn(100) < percent
}

// Between возвращает равномерное число в [min, max] включительно.
// При min >= max возвращает min
func Between(min, max int, src Source) int {
	if min >= max {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Pick возвращает равномерный индекс в [0, n)
func Pick(n int, src Source) int {
	return src.Intn(n)
}

// PickN возвращает k различных индексов из [0, n) без повторений.
// При k >= n возвращает все n индексов в случайном порядке
func PickN(n, k int, src Source) []int {
	if k > n {
		k = n
	}
	// Перестановка Фишера-Йетса, обрезанная до k элементов
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
