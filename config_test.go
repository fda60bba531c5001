//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"testing"
)

func validConfig() ModulationConfig {
	return ModulationConfig{
		Amplitude:  0.3,
		Frequency:  1.1,
		Waveform:   WaveSine,
		Direction:  DirX,
		MaxStep:    0.1,
		Resolution: 0.2,
	}
}

func TestConfigValidate(t *testing.T) {
	table := map[string]struct {
		mutate func(cfg *ModulationConfig)
		param  string
	}{
		"valid":          {mutate: func(cfg *ModulationConfig) {}},
		"zero amplitude": {mutate: func(cfg *ModulationConfig) { cfg.Amplitude = 0 }},
		"neg amplitude":  {mutate: func(cfg *ModulationConfig) { cfg.Amplitude = -0.1 }, param: "amplitude"},
		"neg frequency":  {mutate: func(cfg *ModulationConfig) { cfg.Frequency = -1 }, param: "frequency"},
		"step too big":   {mutate: func(cfg *ModulationConfig) { cfg.MaxStep = 1.5 }, param: "max-step-size"},
		"neg step":       {mutate: func(cfg *ModulationConfig) { cfg.MaxStep = -0.1 }, param: "max-step-size"},
		"zero resolution": {
			mutate: func(cfg *ModulationConfig) { cfg.Resolution = 0 },
			param:  "resolution",
		},
		"neg resolution": {
			mutate: func(cfg *ModulationConfig) { cfg.Resolution = -0.5 },
			param:  "resolution",
		},
	}

	for key, item := range table {
		cfg := validConfig()
		item.mutate(&cfg)

		err := cfg.Validate()
		if item.param == "" {
			if err != nil {
				t.Errorf("%v: unexpected error %v", key, err)
			}
			continue
		}

		invalid, ok := err.(ErrInvalidConfig)
		if !ok {
			t.Errorf("%v: expected ErrInvalidConfig, got %v", key, err)
			continue
		}
		if string(invalid) != item.param {
			t.Errorf("%v: expected parameter '%v', got '%v'", key, item.param, string(invalid))
		}
	}
}

func TestParseDirection(t *testing.T) {
	for name, expected := range directionNames {
		dir, err := ParseDirection(name)
		if err != nil || dir != expected {
			t.Errorf("%v: expected %v, got %v (%v)", name, expected, dir, err)
		}
	}

	_, err := ParseDirection("diagonal")
	if err == nil {
		t.Errorf("expected error for unknown direction")
	}
}
