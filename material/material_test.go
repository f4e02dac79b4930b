package material

import "testing"

func TestNewTableRegistersAir(t *testing.T) {
	tbl := NewTable()
	def := tbl.Get(Air)
	if def.Name != "Air" {
		t.Errorf("expected id 0 to be Air, got %q", def.Name)
	}
	if tbl.Behavior(Air) != Static {
		t.Errorf("Air should be Static, got %v", tbl.Behavior(Air))
	}
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	tbl := NewTable()
	sand := tbl.Register(Def{Name: "Sand", Density: 100, Behavior: Powder})
	water := tbl.Register(Def{Name: "Water", Density: 50, Behavior: Liquid})

	if sand != 1 || water != 2 {
		t.Errorf("expected sequential ids 1,2; got %d,%d", sand, water)
	}
	if tbl.Density(sand) != 100 {
		t.Errorf("expected sand density 100, got %d", tbl.Density(sand))
	}
}

func TestGetOutOfRangeFallsBackToAir(t *testing.T) {
	tbl := NewTable()
	def := tbl.Get(ID(200))
	if def.Name != "Air" {
		t.Errorf("unregistered id should read back as Air, got %q", def.Name)
	}
}

func TestPassableFlag(t *testing.T) {
	tbl := NewTable()
	steam := tbl.Register(Def{Name: "Steam", Behavior: Gas, Flags: FlagPassable})
	if !tbl.Passable(steam) {
		t.Errorf("expected steam to be passable")
	}
	if tbl.Passable(Air) {
		t.Errorf("air has no flags set, should not report passable")
	}
}

func TestRegisterPanicsWhenFull(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Register to panic once the table is full")
		}
	}()
	tbl := NewTable()
	for i := 0; i < 260; i++ {
		tbl.Register(Def{Name: "x"})
	}
}
