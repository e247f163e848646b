package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestNormalizeCapsPerPage(t *testing.T) {
	p := Params{Page: 2, PerPage: 5000}.Normalize()
	if p.PerPage != MaxPerPage {
		t.Fatalf("expected per_page capped at %d, got %d", MaxPerPage, p.PerPage)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestMetaFor(t *testing.T) {
	p := Params{Page: 2, PerPage: 10}
	meta := p.MetaFor(25)
	if meta.CurrentPage != 2 || meta.PerPage != 10 || meta.Total != 25 || meta.LastPage != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	empty := Params{}.MetaFor(0)
	if empty.LastPage != 1 {
		t.Fatalf("empty listing should report last_page 1, got %d", empty.LastPage)
	}
}
