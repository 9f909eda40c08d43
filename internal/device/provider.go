package device

import (
	"context"
	"sync"

	"github.com/shenikar/family_locator/internal/models"
)

// Provider - источник геопозиции, который получает фиксы от устройства пользователя.
// Разрешение на геолокацию сообщается устройством при входе.
type Provider struct {
	mu       sync.Mutex
	granted  bool
	last     *models.Position
	watchers map[int]func(models.Position)
	nextID   int
}

func NewProvider(granted bool, initial *models.Position) *Provider {
	p := &Provider{
		granted:  granted,
		watchers: make(map[int]func(models.Position)),
	}
	if initial != nil {
		fix := *initial
		p.last = &fix
	}
	return p
}

func (p *Provider) RequestPermission(_ context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted, nil
}

// Current возвращает последний известный фикс
func (p *Provider) Current(_ context.Context) (models.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return models.Position{}, models.ErrNoFix
	}
	return *p.last, nil
}

// Watch регистрирует обработчик новых фиксов. Возвращаемая функция снимает подписку.
func (p *Provider) Watch(onUpdate func(models.Position)) (func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.granted {
		return nil, models.ErrPermissionDenied
	}

	id := p.nextID
	p.nextID++
	p.watchers[id] = onUpdate

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.watchers, id)
			p.mu.Unlock()
		})
	}, nil
}

// Report принимает новый фикс от устройства и раздает его подписчикам
func (p *Provider) Report(pos models.Position) error {
	p.mu.Lock()
	if !p.granted {
		p.mu.Unlock()
		return models.ErrPermissionDenied
	}
	fix := pos
	p.last = &fix
	watchers := make([]func(models.Position), 0, len(p.watchers))
	for _, w := range p.watchers {
		watchers = append(watchers, w)
	}
	p.mu.Unlock()

	for _, w := range watchers {
		w(pos)
	}
	return nil
}

// Watchers возвращает число активных подписок
func (p *Provider) Watchers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.watchers)
}
