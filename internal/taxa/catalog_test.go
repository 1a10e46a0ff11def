package taxa

import (
	"testing"
	"time"
)

func TestCatalogProfilesAreWellFormed(t *testing.T) {
	catalog := Catalog()
	if len(catalog) == 0 {
		t.Fatal("catalog is empty")
	}

	for _, p := range catalog {
		if p.Genus == "" {
			t.Errorf("profile %+v: empty genus", p)
		}
		if len(p.ActiveMonths) == 0 {
			t.Errorf("%s: no active months", p.Name())
		}
		for _, m := range p.ActiveMonths {
			if m < time.January || m > time.December {
				t.Errorf("%s: invalid month %d", p.Name(), m)
			}
		}
		if p.TempTolerance <= 0 {
			t.Errorf("%s: temperature tolerance must be positive", p.Name())
		}
		if p.WindPenalty < 0 || p.WindPenalty >= 1 {
			t.Errorf("%s: wind penalty %v out of [0,1)", p.Name(), p.WindPenalty)
		}
		if p.RainSensitivity <= 0 {
			t.Errorf("%s: rain sensitivity must be positive", p.Name())
		}
	}
}

func TestActiveIn(t *testing.T) {
	p := Profile{Genus: "Lasius", ActiveMonths: []time.Month{time.June, time.July}}
	if !p.ActiveIn(time.July) {
		t.Error("expected July active")
	}
	if p.ActiveIn(time.December) {
		t.Error("expected December inactive")
	}
}

func TestName(t *testing.T) {
	if got := (Profile{Genus: "Formica"}).Name(); got != "Formica" {
		t.Errorf("Name = %q, want Formica", got)
	}
	if got := (Profile{Genus: "Lasius", Species: "niger"}).Name(); got != "Lasius niger" {
		t.Errorf("Name = %q, want Lasius niger", got)
	}
}
