package loop

// Event describes where and when a hook fired.
type Event struct {
	X, Y   float64 // Position of the entity involved
	Radius float64 // Radius of the entity involved
	Score  int     // Score after the event was applied
	Level  int     // Current level
}

// Hooks receives fire-and-forget notifications from the game.
// Calls are synchronous on the frame loop; implementations must return quickly
// and must not call back into the Game.
type Hooks interface {
	OnPlayerHit(ev Event)
	OnEnemyDamaged(ev Event)
	OnEnemyKilled(ev Event)
	OnLevelCleared(ev Event)
	OnGameWon(ev Event)
	OnShoot(ev Event)
}

// NopHooks ignores every notification. Embed it to implement a subset of Hooks.
type NopHooks struct{}

func (NopHooks) OnPlayerHit(Event)    {}
func (NopHooks) OnEnemyDamaged(Event) {}
func (NopHooks) OnEnemyKilled(Event)  {}
func (NopHooks) OnLevelCleared(Event) {}
func (NopHooks) OnGameWon(Event)      {}
func (NopHooks) OnShoot(Event)        {}

var _ Hooks = NopHooks{}

// multiHooks fans notifications out to several Hooks in order.
type multiHooks []Hooks

// MultiHooks combines several Hooks into one. Nil entries are skipped and
// nested combinations are flattened.
func MultiHooks(hooks ...Hooks) Hooks {
	var m multiHooks
	for _, h := range hooks {
		switch h := h.(type) {
		case nil:
		case multiHooks:
			m = append(m, h...)
		default:
			m = append(m, h)
		}
	}
	return m
}

// collaborators lists the individual Hooks behind h.
func collaborators(h Hooks) []Hooks {
	if m, ok := h.(multiHooks); ok {
		return m
	}
	return []Hooks{h}
}

func (m multiHooks) OnPlayerHit(ev Event) {
	for _, h := range m {
		h.OnPlayerHit(ev)
	}
}

func (m multiHooks) OnEnemyDamaged(ev Event) {
	for _, h := range m {
		h.OnEnemyDamaged(ev)
	}
}

func (m multiHooks) OnEnemyKilled(ev Event) {
	for _, h := range m {
		h.OnEnemyKilled(ev)
	}
}

func (m multiHooks) OnLevelCleared(ev Event) {
	for _, h := range m {
		h.OnLevelCleared(ev)
	}
}

func (m multiHooks) OnGameWon(ev Event) {
	for _, h := range m {
		h.OnGameWon(ev)
	}
}

func (m multiHooks) OnShoot(ev Event) {
	for _, h := range m {
		h.OnShoot(ev)
	}
}
