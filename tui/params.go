// ABOUTME: Parameter manager for live motion tuning
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import "showreel/config"

// Parameter represents a tunable setting with constraints
type Parameter struct {
	Name     string
	Value    *float64 // Pointer to actual config field
	IntValue *int     // For integer parameters
	Min      float64
	Max      float64
	Step     float64
	IsInt    bool
}

// motionParams builds the parameter list with pointers into cfg
func motionParams(cfg *config.Config) []Parameter {
	return []Parameter{
		{"Speed (units/frame)", &cfg.Marquee.Speed, nil, 0.1, 5, 0.1, false},
		{"Resume delay (ms)", nil, &cfg.Marquee.ResumeDelayMS, 250, 10000, 250, true},
		{"Nudge gap", &cfg.Marquee.NudgeGap, nil, 0, 200, 5, false},
		{"Default nudge", &cfg.Marquee.DefaultNudge, nil, 50, 2000, 50, false},
		{"Frames per second", nil, &cfg.Display.FPS, 10, 120, 10, true},
	}
}

// ParamManager manages parameter adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]
	if param.IsInt {
		newVal := *param.IntValue + int(param.Step)
		if float64(newVal) <= param.Max {
			*param.IntValue = newVal
			return true
		}
	} else {
		newVal := *param.Value + param.Step
		// Clamp to max if we're very close (handles floating point precision)
		if newVal > param.Max && newVal <= param.Max+0.0001 {
			newVal = param.Max
		}

		if newVal <= param.Max {
			*param.Value = newVal
			return true
		}
	}

	return false
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]
	if param.IsInt {
		newVal := *param.IntValue - int(param.Step)
		if float64(newVal) >= param.Min {
			*param.IntValue = newVal
			return true
		}
	} else {
		newVal := *param.Value - param.Step
		// Clamp to min if we're very close (handles floating point precision)
		if newVal < param.Min && newVal >= param.Min-0.0001 {
			newVal = param.Min
		}

		if newVal >= param.Min {
			*param.Value = newVal
			return true
		}
	}

	return false
}

// ResetToDefaults resets all parameters to their default values
func (pm *ParamManager) ResetToDefaults(defaults config.Config) {
	// Order matches motionParams
	if len(pm.params) >= 5 {
		*pm.params[0].Value = defaults.Marquee.Speed
		*pm.params[1].IntValue = defaults.Marquee.ResumeDelayMS
		*pm.params[2].Value = defaults.Marquee.NudgeGap
		*pm.params[3].Value = defaults.Marquee.DefaultNudge
		*pm.params[4].IntValue = defaults.Display.FPS
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
