package progress

import "testing"

func TestCatalogIsLevelThresholdCrossProduct(t *testing.T) {
	defs := Catalog()
	if len(defs) != len(BadgeLevels())*len(BadgeThresholds()) {
		t.Fatalf("expected %d badges, got %d", len(BadgeLevels())*len(BadgeThresholds()), len(defs))
	}
	first, last := defs[0], defs[len(defs)-1]
	if first.ID != MakeBadgeID("3", 3) || last.ID != MakeBadgeID("5", 5) {
		t.Fatalf("unexpected catalog order: first=%s last=%s", first.ID, last.ID)
	}
	seen := map[BadgeID]bool{}
	for _, def := range defs {
		if seen[def.ID] {
			t.Fatalf("duplicate badge id %s", def.ID)
		}
		seen[def.ID] = true
		if def.ID != MakeBadgeID(def.Level, def.Threshold) {
			t.Fatalf("id %s does not match level %s threshold %d", def.ID, def.Level, def.Threshold)
		}
		if got, ok := LookupBadge(def.ID); !ok || got.Title != def.Title {
			t.Fatalf("lookup %s failed", def.ID)
		}
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	defs := Catalog()
	defs[0].Title = "changed"
	if Catalog()[0].Title == "changed" {
		t.Fatalf("catalog must not be mutable through the returned slice")
	}
}

func TestMakeBadgeID(t *testing.T) {
	if got := MakeBadgeID("4", 5); got != "level-4-streak-5" {
		t.Fatalf("unexpected badge id %q", got)
	}
	if IsBadgeLevel("all") || IsBadgeLevel("1") || !IsBadgeLevel("3") {
		t.Fatalf("unexpected badge level membership")
	}
	if _, ok := LookupBadge("level-1-streak-3"); ok {
		t.Fatalf("level 1 has no badges")
	}
}
