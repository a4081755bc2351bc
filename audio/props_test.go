package audio

import (
	"reflect"
	"testing"
)

func TestPropsSet(t *testing.T) {
	props := NewProps()
	props.MustRegister("level", setFloat64(0, 1), 0.5)
	props.MustRegister("mode", setChoice("a", "b"), "a")
	props.MustRegister("div", setIntChoice(1, 2, 4), 4)
	props.MustRegister("on", setBool, false)
	props.MustRegister("bpm", clampFloat64(60, 200), 120.)

	tests := []struct {
		key   string
		value interface{}
		want  interface{}
		err   bool
	}{
		{key: "level", value: 0.25, want: 0.25},
		{key: "level", value: 1, want: 1.0},
		{key: "level", value: 2.0, want: 1.0, err: true},
		{key: "level", value: "loud", want: 1.0, err: true},
		{key: "mode", value: "b", want: "b"},
		{key: "mode", value: "c", want: "b", err: true},
		{key: "div", value: 2, want: 2},
		{key: "div", value: 3, want: 2, err: true},
		{key: "div", value: 1.0, want: 1},
		{key: "on", value: "on", want: true},
		{key: "on", value: false, want: false},
		{key: "on", value: "maybe", want: false, err: true},
		{key: "bpm", value: 250., want: 200.},
		{key: "bpm", value: 10, want: 60.},
		{key: "missing", value: 1, err: true},
	}
	for _, test := range tests {
		err := props.Set(test.key, test.value)
		if test.err != (err != nil) {
			t.Errorf("set %s to %v: unexpected error value: %v", test.key, test.value, err)
		}
		if test.key == "missing" {
			continue
		}
		got, err := props.Get(test.key)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%s: want %v (%T), got %v (%T)", test.key, test.want, test.want, got, got)
		}
	}
}

func TestPropsRegisterTwice(t *testing.T) {
	props := NewProps()
	props.MustRegister("level", setFloat64(0, 1), 0.5)
	if _, err := props.Register("level", setFloat64(0, 1), 0.5); err == nil {
		t.Errorf("expected error when registering a property twice")
	}
}

func TestTrimClamp(t *testing.T) {
	props := NewProps()
	p := registerPadParams(props, 0)

	if err := props.Set(padKey(ParamTrimEnd, 0), 0.5); err != nil {
		t.Fatal(err)
	}
	if err := props.Set(padKey(ParamTrimStart, 0), 0.8); err != nil {
		t.Fatal(err)
	}
	if want, got := 0.49, p.TrimStart(); !almostEqual(want, got, 1e-9) {
		t.Errorf("trim start: want %v, got %v", want, got)
	}
	if err := props.Set(padKey(ParamTrimEnd, 0), 0.0); err != nil {
		t.Fatal(err)
	}
	if want, got := 0.5, p.TrimEnd(); !almostEqual(want, got, 1e-9) {
		t.Errorf("trim end: want %v, got %v", want, got)
	}
	if p.TrimStart() >= p.TrimEnd() {
		t.Errorf("trim start %v not below trim end %v", p.TrimStart(), p.TrimEnd())
	}
	if err := props.Set(padKey(ParamTrimStart, 0), 1.5); err == nil {
		t.Errorf("expected range error")
	}
}

func TestPadParamKeys(t *testing.T) {
	props := NewProps()
	registerPadParams(props, 2)
	for _, name := range ParamNames {
		if name == ParamTune {
			continue
		}
		if _, err := props.Get(name + ".3"); err != nil {
			t.Errorf("param %s not registered for pad 3: %v", name, err)
		}
	}
}
