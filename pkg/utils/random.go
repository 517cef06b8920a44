package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

// Потоки случайных чисел. Каждая подсистема берёт свой поток от мастер-зерна,
// чтобы добавление сущностей одного типа не сдвигало броски другого.
const (
	StreamCity        int64 = 1
	StreamSpawn       int64 = 2
	StreamTraffic     int64 = 3 // группа: поток машины - EntitySeed(master, StreamTraffic, i)
	StreamPedestrians int64 = 4 // группа: поток пешехода - EntitySeed(master, StreamPedestrians, i)
)

// DeriveSeed смешивает мастер-зерно и номер потока (splitmix64).
func DeriveSeed(master, stream int64) int64 {
	z := uint64(master) + uint64(stream)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// EntitySeed - зерно i-й сущности группы. Потоки вложенные,
// поэтому группы не пересекаются при любом числе сущностей.
func EntitySeed(master, group, index int64) int64 {
	return DeriveSeed(DeriveSeed(master, group), index)
}

// NewRand создает генератор для потока stream
func NewRand(master, stream int64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(master, stream)))
}

// NewEntityRand создает генератор для i-й сущности группы
func NewEntityRand(master, group, index int64) *rand.Rand {
	return rand.New(rand.NewSource(EntitySeed(master, group, index)))
}

// GenerateID создает уникальный ID сессии
func GenerateID() string {
	return uuid.New().String()
}
