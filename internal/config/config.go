package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Admin    AdminConfig    `toml:"admin"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AdminConfig настройки доступа к административным ручкам
type AdminConfig struct {
	Token string `toml:"token"`
}

// ScheduleConfig расписания обеих услуг
type ScheduleConfig struct {
	Procedure    ServiceScheduleConfig `toml:"procedure"`
	Consultation ServiceScheduleConfig `toml:"consultation"`
}

// ServiceScheduleConfig расписание одной услуги
type ServiceScheduleConfig struct {
	StartTime           string `toml:"start_time"`
	EndTime             string `toml:"end_time"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	CabinCount          int64  `toml:"cabin_count"`
	CapacityPerSlot     int    `toml:"capacity_per_slot"`
}

// Load читает и парсит конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// ToDomain конвертирует расписания в доменную конфигурацию.
// Пустые секции заполняются дефолтами центра, итог валидируется.
func (s ScheduleConfig) ToDomain() (domain.ScheduleConfig, error) {
	defaults := domain.DefaultScheduleConfig()

	cfg := domain.ScheduleConfig{
		Procedure:    s.Procedure.toDomain(defaults.Procedure),
		Consultation: s.Consultation.toDomain(defaults.Consultation),
	}

	if err := cfg.Validate(); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule: %w", err)
	}

	return cfg, nil
}

func (s ServiceScheduleConfig) toDomain(defaults domain.ServiceSchedule) domain.ServiceSchedule {
	schedule := defaults

	if s.StartTime != "" {
		schedule.StartTime = types.TimeString(s.StartTime)
	}
	if s.EndTime != "" {
		schedule.EndTime = types.TimeString(s.EndTime)
	}
	if s.SlotDurationMinutes > 0 {
		schedule.SlotDurationMinutes = s.SlotDurationMinutes
	}
	if s.CabinCount > 0 {
		schedule.CabinCount = s.CabinCount
	}
	if s.CapacityPerSlot > 0 {
		schedule.CapacityPerSlot = s.CapacityPerSlot
	}

	return schedule
}
