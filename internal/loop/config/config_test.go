package config

import (
	"testing"
	"time"
)

func TestLevelsUnmarshalText(t *testing.T) {
	var l Levels
	if err := l.UnmarshalText([]byte("5@1500ms, 8@1.2s,12@900ms")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	want := Levels{
		{NumberEnemy: 5, EnemyGenerateTime: 1500 * time.Millisecond},
		{NumberEnemy: 8, EnemyGenerateTime: 1200 * time.Millisecond},
		{NumberEnemy: 12, EnemyGenerateTime: 900 * time.Millisecond},
	}
	if len(l) != len(want) {
		t.Fatalf("got %d levels, want %d", len(l), len(want))
	}
	for i := range want {
		if l[i] != want[i] {
			t.Errorf("level %d = %+v, want %+v", i+1, l[i], want[i])
		}
	}
}

func TestLevelsUnmarshalTextErrors(t *testing.T) {
	for _, in := range []string{"", "5", "x@1s", "5@soon"} {
		var l Levels
		if err := l.UnmarshalText([]byte(in)); err == nil {
			t.Errorf("UnmarshalText(%q) succeeded, want error", in)
		}
	}
}

func TestLevelsStringRoundTrip(t *testing.T) {
	var l Levels
	if err := l.UnmarshalText([]byte(DefaultLevels().String())); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if l.String() != DefaultLevels().String() {
		t.Fatalf("got %q, want %q", l.String(), DefaultLevels().String())
	}
}

func TestDefaultRulesDifficultyIncreases(t *testing.T) {
	r := DefaultRules()
	if err := r.Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	if r.MaxLevel() != 3 {
		t.Fatalf("MaxLevel = %d, want 3", r.MaxLevel())
	}
	for i := 1; i < len(r.Levels); i++ {
		prev, cur := r.Levels[i-1], r.Levels[i]
		if cur.NumberEnemy <= prev.NumberEnemy || cur.EnemyGenerateTime >= prev.EnemyGenerateTime {
			t.Errorf("level %d is not harder than level %d", i+1, i)
		}
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
	}{
		{"no levels", Rules{}},
		{"zero quota", Rules{Levels: Levels{{NumberEnemy: 0, EnemyGenerateTime: time.Second}}}},
		{"zero interval", Rules{Levels: Levels{{NumberEnemy: 1}}}},
		{"negative score", Rules{Levels: DefaultLevels(), DamageScore: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rules.Validate(); err == nil {
				t.Fatal("Validate succeeded, want error")
			}
		})
	}
}

func TestRulesLevel(t *testing.T) {
	r := DefaultRules()
	if _, err := r.Level(0); err == nil {
		t.Error("Level(0) succeeded, want error")
	}
	if _, err := r.Level(4); err == nil {
		t.Error("Level(4) succeeded, want error")
	}
	lv, err := r.Level(2)
	if err != nil {
		t.Fatalf("Level(2): %v", err)
	}
	if lv.NumberEnemy != 8 {
		t.Fatalf("Level(2).NumberEnemy = %d, want 8", lv.NumberEnemy)
	}
}
