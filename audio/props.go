package audio

import (
	"fmt"
	"sync/atomic"
)

// Props stores engine and pad configuration that can be updated without locks. All
// properties should be registered before any reads take place.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first using Register.
func (p *Props) Set(key string, value interface{}) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	set, ok := p.setters[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := set(value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return prop.Load(), nil
}

// Register adds a new property.
func (p *Props) Register(key string, set setter, init interface{}) (*atomic.Value, error) {
	if _, ok := p.properties[key]; ok {
		return nil, fmt.Errorf("property %s already registered", key)
	}
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	return &prop, set(init, &prop)
}

func (p *Props) MustRegister(key string, set setter, init interface{}) *atomic.Value {
	prop, err := p.Register(key, set, init)
	if err != nil {
		panic(err)
	}
	return prop
}

type setter func(val interface{}, dest *atomic.Value) error

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value is not a number: %v", v)
	}
}

func setFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		if f < min || f > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, f)
		}
		dest.Store(f)
		return nil
	}
}

// clampFloat64 is like setFloat64 but pins out of range values to the nearest bound.
func clampFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		if f < min {
			f = min
		} else if f > max {
			f = max
		}
		dest.Store(f)
		return nil
	}
}

func setIntChoice(choices ...int) setter {
	return func(v interface{}, dest *atomic.Value) error {
		var n int
		switch x := v.(type) {
		case int:
			n = x
		case float64:
			if x != float64(int(x)) {
				return fmt.Errorf("value is not an integer: %v", v)
			}
			n = int(x)
		default:
			return fmt.Errorf("value is not an int: %v", v)
		}
		for _, c := range choices {
			if c == n {
				dest.Store(n)
				return nil
			}
		}
		return fmt.Errorf("%d is not one of %v", n, choices)
	}
}

func setChoice(choices ...string) setter {
	return func(v interface{}, dest *atomic.Value) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("value is not a string: %v", v)
		}
		for _, c := range choices {
			if c == s {
				dest.Store(s)
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %v", s, choices)
	}
}

func setBool(v interface{}, dest *atomic.Value) error {
	switch b := v.(type) {
	case bool:
		dest.Store(b)
	case string:
		switch b {
		case "on", "true", "yes":
			dest.Store(true)
		case "off", "false", "no":
			dest.Store(false)
		default:
			return fmt.Errorf("value is not a boolean: %v", v)
		}
	case int:
		dest.Store(b != 0)
	case float64:
		dest.Store(b != 0)
	default:
		return fmt.Errorf("value is not a boolean: %v", v)
	}
	return nil
}
