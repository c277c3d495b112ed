// Package browser управляет жизненным циклом headless-браузера, на котором выполняется аудит.
//
// Браузер выдается в виде аренды (Lease): вызывающий код обязан освободить ее
// через defer сразу после успешного Launch, чтобы процесс завершался на любом пути выхода.
package browser

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Launcher запускает браузер и возвращает аренду на него
type Launcher interface {
	Launch(ctx context.Context) (*Lease, error)
}

// Lease представляет запущенный процесс браузера с портом удаленной отладки
type Lease struct {
	ID   string // Идентификатор аренды для логов
	Port int    // Порт удаленной отладки (CDP)

	release func() error
	once    sync.Once
	err     error
}

// NewLease создает аренду; release вызывается не более одного раза
func NewLease(port int, release func() error) *Lease {
	return &Lease{
		ID:      uuid.New().String(),
		Port:    port,
		release: release,
	}
}

// Release завершает процесс браузера. Повторные вызовы возвращают результат первого.
func (l *Lease) Release() error {
	l.once.Do(func() {
		if l.release != nil {
			l.err = l.release()
		}
	})
	return l.err
}
