//go:build !deadlock

// Package syncutils provides the mutex used by resolvers and stubs.
//
// Building with the deadlock tag swaps in github.com/sasha-s/go-deadlock so an
// initializer that re-enters its own resolver is reported instead of hanging.
package syncutils

import (
	"sync"
)

type Mutex sync.Mutex

func (m *Mutex) Lock()   { (*sync.Mutex)(m).Lock() }
func (m *Mutex) Unlock() { (*sync.Mutex)(m).Unlock() }
