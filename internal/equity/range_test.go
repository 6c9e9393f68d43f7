package equity

import (
	"testing"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/profile"
	"github.com/lox/holdem-brain/internal/randutil"
)

func card(t *testing.T, s string) deck.Card {
	t.Helper()
	c, err := deck.ParseCard(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return c
}

func TestRangeAllows(t *testing.T) {
	tests := []struct {
		c1, c2 string
		r      Range
		want   bool
	}{
		{"As", "Ad", TightRange{}, true},
		{"Qs", "Js", TightRange{}, true},
		{"8h", "7h", TightRange{}, false},
		{"7d", "2c", TightRange{}, false},
		{"8h", "7h", MediumRange{}, true},
		{"As", "Ad", MediumRange{}, true},
		{"7d", "2c", MediumRange{}, false},
		{"7d", "2c", LooseRange{}, true},
		{"7d", "2c", RandomRange{}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Allows(card(t, tt.c1), card(t, tt.c2)); got != tt.want {
			t.Errorf("%T.Allows(%s, %s) = %v, want %v", tt.r, tt.c1, tt.c2, got, tt.want)
		}
	}
}

func TestTightRangeSamplesPremiumHands(t *testing.T) {
	rng := randutil.New(1)
	available := deck.All()

	for i := 0; i < 200; i++ {
		hand, ok := TightRange{}.SampleHand(available, rng)
		if !ok {
			t.Fatal("sampling failed with a full deck")
		}
		if !isTightHand(hand[0], hand[1]) {
			t.Fatalf("tight range sampled %s%s from a full deck", hand[0], hand[1])
		}
	}
}

func TestForProfileMapsPlaystyles(t *testing.T) {
	tight := profile.Profile{Hands: 20, FoldFreq: 0.8}
	if _, ok := ForProfile(tight).(TightRange); !ok {
		t.Errorf("tight profile mapped to %T", ForProfile(tight))
	}

	aggressive := profile.Profile{Hands: 20, RaiseFreq: 0.5}
	if _, ok := ForProfile(aggressive).(MediumRange); !ok {
		t.Errorf("aggressive profile mapped to %T", ForProfile(aggressive))
	}

	station := profile.Profile{Hands: 20, CallFreq: 0.7}
	if _, ok := ForProfile(station).(LooseRange); !ok {
		t.Errorf("passive profile mapped to %T", ForProfile(station))
	}

	if _, ok := ForProfile(profile.Profile{}).(RandomRange); !ok {
		t.Errorf("neutral profile mapped to %T", ForProfile(profile.Profile{}))
	}
}
