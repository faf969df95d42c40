package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DashboardConfig carries the tunables of the consolidation and metrics views.
type DashboardConfig struct {
	WarehouseName         string    `mapstructure:"warehouseName"`
	WarehouseCapacityCm3  float64   `mapstructure:"warehouseCapacityCm3"`
	BaselineCost          float64   `mapstructure:"baselineCost"`
	ConsolidationDiscount float64   `mapstructure:"consolidationDiscount"`
	DefaultMinGroupSize   int       `mapstructure:"defaultMinGroupSize"`
	OnTime                OnTimeSLA `mapstructure:"onTime"`
}

// OnTimeSLA is the maximum number of days between arrival and delivery
// for a delivered shipment to count as on time, per transport mode.
type OnTimeSLA struct {
	AirDays int `mapstructure:"airDays"`
	SeaDays int `mapstructure:"seaDays"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		WarehouseName:         "Main Warehouse",
		WarehouseCapacityCm3:  60_000_000_000,
		BaselineCost:          75,
		ConsolidationDiscount: 0.15,
		DefaultMinGroupSize:   2,
		OnTime: OnTimeSLA{
			AirDays: 7,
			SeaDays: 30,
		},
	}
}

type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

// NewStaticDashboardConfigHolder returns a holder that never reloads.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDashboardConfigHolder(log *zap.Logger) (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/shipping-management")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHIPPING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.warehouseName", defaults.WarehouseName)
	v.SetDefault("dashboard.warehouseCapacityCm3", defaults.WarehouseCapacityCm3)
	v.SetDefault("dashboard.baselineCost", defaults.BaselineCost)
	v.SetDefault("dashboard.consolidationDiscount", defaults.ConsolidationDiscount)
	v.SetDefault("dashboard.defaultMinGroupSize", defaults.DefaultMinGroupSize)
	v.SetDefault("dashboard.onTime.airDays", defaults.OnTime.AirDays)
	v.SetDefault("dashboard.onTime.seaDays", defaults.OnTime.SeaDays)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return nil, err
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDashboardConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	log = log.Named("dashboard.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DashboardConfig
		if err := v.UnmarshalKey("dashboard", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateDashboardConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	if h == nil {
		return DefaultDashboardConfig()
	}
	cfg, ok := h.current.Load().(DashboardConfig)
	if !ok {
		return DefaultDashboardConfig()
	}
	return cfg
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if strings.TrimSpace(cfg.WarehouseName) == "" {
		return errors.New("dashboard.warehouseName cannot be empty")
	}
	if cfg.WarehouseCapacityCm3 <= 0 {
		return errors.New("dashboard.warehouseCapacityCm3 must be positive")
	}
	if cfg.BaselineCost < 0 {
		return errors.New("dashboard.baselineCost cannot be negative")
	}
	if cfg.ConsolidationDiscount < 0 || cfg.ConsolidationDiscount > 1 {
		return errors.New("dashboard.consolidationDiscount must be within [0, 1]")
	}
	if cfg.DefaultMinGroupSize < 1 {
		return errors.New("dashboard.defaultMinGroupSize must be at least 1")
	}
	if cfg.OnTime.AirDays < 0 || cfg.OnTime.SeaDays < 0 {
		return errors.New("dashboard.onTime days cannot be negative")
	}
	return nil
}
