/*
NAME
  variables.go

DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type
  in a string format, a function for updating the variable in the Config
  struct from a string, and finally, a validation function to check the
  validity of the corresponding field value in the Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyFrameRate                = "FrameRate"
	KeyAnalyseByTime            = "AnalyseByTime"
	KeyLuminanceFlashThreshold  = "LuminanceFlashThreshold"
	KeyLuminanceDarkThreshold   = "LuminanceDarkThreshold"
	KeyRedFlashThreshold        = "RedFlashThreshold"
	KeyRedDarkThreshold         = "RedDarkThreshold"
	KeyRedApplyDarkThreshold    = "RedApplyDarkThreshold"
	KeyFlashAreaProportion      = "FlashAreaProportion"
	KeyMaxTransitions           = "MaxTransitions"
	KeyMinTransitions           = "MinTransitions"
	KeyWarningTransitions       = "WarningTransitions"
	KeyExtendedFailSeconds      = "ExtendedFailSeconds"
	KeyExtendedFailWindow       = "ExtendedFailWindow"
	KeyPatternEnabled           = "PatternEnabled"
	KeyPatternMinStripes        = "PatternMinStripes"
	KeyPatternLightLuminanceMin = "PatternLightLuminanceMin"
	KeyPatternTimeThreshold     = "PatternTimeThreshold"
	KeyPatternAreaProportion    = "PatternAreaProportion"
	KeyFrameResizeEnabled       = "FrameResizeEnabled"
	KeyFrameResizeProportion    = "FrameResizeProportion"
	KeyLogging                  = "logging"
	KeySuppress                 = "Suppress"
)

// Config map parameter types.
const (
	typeUint  = "uint"
	typeInt   = "int"
	typeBool  = "bool"
	typeFloat = "float"
)

// Variables describes the variables that can be used for photosensitivity
// core control. These structs provide the name and type of variable, a
// function for updating this variable in a Config, and a function for
// validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyFrameRate,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FrameRate = parseUint(KeyFrameRate, v, c) },
		Validate: func(c *Config) {
			if c.FrameRate <= 0 || c.FrameRate > 240 {
				c.LogInvalidField(KeyFrameRate, defaultFrameRate)
				c.FrameRate = defaultFrameRate
			}
		},
	},
	{
		Name:   KeyAnalyseByTime,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.AnalyseByTime = parseBool(KeyAnalyseByTime, v, c) },
	},
	{
		Name: KeyLuminanceFlashThreshold,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.LuminanceFlashThreshold = float32(parseFloat(KeyLuminanceFlashThreshold, v, c))
		},
		Validate: func(c *Config) {
			if c.LuminanceFlashThreshold <= 0 {
				c.LogInvalidField(KeyLuminanceFlashThreshold, defaultLuminanceFlashThreshold)
				c.LuminanceFlashThreshold = defaultLuminanceFlashThreshold
			}
		},
	},
	{
		Name: KeyLuminanceDarkThreshold,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.LuminanceDarkThreshold = float32(parseFloat(KeyLuminanceDarkThreshold, v, c))
		},
		Validate: func(c *Config) {
			if c.LuminanceDarkThreshold <= 0 {
				c.LogInvalidField(KeyLuminanceDarkThreshold, defaultLuminanceDarkThreshold)
				c.LuminanceDarkThreshold = defaultLuminanceDarkThreshold
			}
		},
	},
	{
		Name: KeyRedFlashThreshold,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.RedFlashThreshold = float32(parseFloat(KeyRedFlashThreshold, v, c))
		},
		Validate: func(c *Config) {
			if c.RedFlashThreshold <= 0 {
				c.LogInvalidField(KeyRedFlashThreshold, defaultRedFlashThreshold)
				c.RedFlashThreshold = defaultRedFlashThreshold
			}
		},
	},
	{
		Name: KeyRedDarkThreshold,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.RedDarkThreshold = float32(parseFloat(KeyRedDarkThreshold, v, c))
		},
		Validate: func(c *Config) {
			if c.RedDarkThreshold <= 0 {
				c.LogInvalidField(KeyRedDarkThreshold, defaultRedDarkThreshold)
				c.RedDarkThreshold = defaultRedDarkThreshold
			}
		},
	},
	{
		Name:   KeyRedApplyDarkThreshold,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.RedApplyDarkThreshold = parseBool(KeyRedApplyDarkThreshold, v, c) },
	},
	{
		Name: KeyFlashAreaProportion,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.FlashAreaProportion = parseFloat(KeyFlashAreaProportion, v, c)
		},
		Validate: func(c *Config) {
			if c.FlashAreaProportion == 0 {
				c.LogInvalidField(KeyFlashAreaProportion, defaultFlashAreaProportion)
				c.FlashAreaProportion = defaultFlashAreaProportion
			}
		},
	},
	{
		Name:   KeyMaxTransitions,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.MaxTransitions = parseInt(KeyMaxTransitions, v, c) },
		Validate: func(c *Config) {
			if c.MaxTransitions <= 0 {
				c.LogInvalidField(KeyMaxTransitions, defaultMaxTransitions)
				c.MaxTransitions = defaultMaxTransitions
			}
		},
	},
	{
		Name:   KeyMinTransitions,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.MinTransitions = parseInt(KeyMinTransitions, v, c) },
		Validate: func(c *Config) {
			if c.MinTransitions <= 0 {
				c.LogInvalidField(KeyMinTransitions, defaultMinTransitions)
				c.MinTransitions = defaultMinTransitions
			}
		},
	},
	{
		Name:   KeyWarningTransitions,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.WarningTransitions = parseInt(KeyWarningTransitions, v, c) },
		Validate: func(c *Config) {
			if c.WarningTransitions <= 0 {
				c.LogInvalidField(KeyWarningTransitions, defaultWarningTransitions)
				c.WarningTransitions = defaultWarningTransitions
			}
		},
	},
	{
		Name: KeyExtendedFailSeconds,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.ExtendedFailSeconds = parseFloat(KeyExtendedFailSeconds, v, c)
		},
		Validate: func(c *Config) {
			if c.ExtendedFailSeconds <= 0 {
				c.LogInvalidField(KeyExtendedFailSeconds, defaultExtendedFailSeconds)
				c.ExtendedFailSeconds = defaultExtendedFailSeconds
			}
		},
	},
	{
		Name: KeyExtendedFailWindow,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.ExtendedFailWindow = parseFloat(KeyExtendedFailWindow, v, c)
		},
		Validate: func(c *Config) {
			if c.ExtendedFailWindow <= 0 {
				c.LogInvalidField(KeyExtendedFailWindow, defaultExtendedFailWindow)
				c.ExtendedFailWindow = defaultExtendedFailWindow
			}
		},
	},
	{
		Name:   KeyPatternEnabled,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.PatternEnabled = parseBool(KeyPatternEnabled, v, c) },
	},
	{
		Name:   KeyPatternMinStripes,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.PatternMinStripes = parseInt(KeyPatternMinStripes, v, c) },
		Validate: func(c *Config) {
			if c.PatternMinStripes <= 0 {
				c.LogInvalidField(KeyPatternMinStripes, defaultPatternMinStripes)
				c.PatternMinStripes = defaultPatternMinStripes
			}
		},
	},
	{
		Name: KeyPatternLightLuminanceMin,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.PatternLightLuminanceMin = parseFloat(KeyPatternLightLuminanceMin, v, c)
		},
		Validate: func(c *Config) {
			if c.PatternLightLuminanceMin <= 0 || c.PatternLightLuminanceMin > 1 {
				c.LogInvalidField(KeyPatternLightLuminanceMin, defaultPatternLightLuminanceMin)
				c.PatternLightLuminanceMin = defaultPatternLightLuminanceMin
			}
		},
	},
	{
		Name: KeyPatternTimeThreshold,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.PatternTimeThreshold = parseFloat(KeyPatternTimeThreshold, v, c)
		},
		Validate: func(c *Config) {
			if c.PatternTimeThreshold <= 0 {
				c.LogInvalidField(KeyPatternTimeThreshold, defaultPatternTimeThreshold)
				c.PatternTimeThreshold = defaultPatternTimeThreshold
			}
		},
	},
	{
		Name: KeyPatternAreaProportion,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.PatternAreaProportion = parseFloat(KeyPatternAreaProportion, v, c)
		},
		Validate: func(c *Config) {
			if c.PatternAreaProportion == 0 {
				c.LogInvalidField(KeyPatternAreaProportion, defaultPatternAreaProportion)
				c.PatternAreaProportion = defaultPatternAreaProportion
			}
		},
	},
	{
		Name:   KeyFrameResizeEnabled,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.FrameResizeEnabled = parseBool(KeyFrameResizeEnabled, v, c) },
	},
	{
		Name: KeyFrameResizeProportion,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.FrameResizeProportion = parseFloat(KeyFrameResizeProportion, v, c)
		},
		Validate: func(c *Config) {
			if c.FrameResizeEnabled && (c.FrameResizeProportion <= 0 || c.FrameResizeProportion >= 1) {
				c.LogInvalidField(KeyFrameResizeProportion, defaultFrameResizeProportion)
				c.FrameResizeProportion = defaultFrameResizeProportion
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name: KeySuppress,
		Type: typeBool,
		Update: func(c *Config, v string) {
			c.Suppress = parseBool(KeySuppress, v, c)
			if jl, ok := c.Logger.(*logging.JSONLogger); ok {
				jl.SetSuppress(c.Suppress)
			}
		},
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseInt(n, v string, c *Config) int {
	_v, err := strconv.Atoi(v)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
	}
	return _v
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expected bool for param %s", n), "value", v)
	}
	return
}
