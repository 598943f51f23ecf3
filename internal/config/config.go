package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置（仅用于非权威的房间镜像与排行榜）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	StartingBalance int `yaml:"starting_balance"` // 新玩家初始余额
	MaxPlayers      int `yaml:"max_players"`      // 单个房间最大人数
	RollDelay       int `yaml:"roll_delay"`       // 掷骰动画延迟（秒）
	RoomPersistence int `yaml:"room_persistence"` // 空房间保留时间（分钟）
	SessionGrace    int `yaml:"session_grace"`    // 断线会话宽限期（分钟）
}

// RollDelayDuration 返回掷骰延迟时长
func (c *GameConfig) RollDelayDuration() time.Duration {
	return time.Duration(c.RollDelay) * time.Second
}

// RoomPersistenceDuration 返回空房间保留时长
func (c *GameConfig) RoomPersistenceDuration() time.Duration {
	return time.Duration(c.RoomPersistence) * time.Minute
}

// SessionGraceDuration 返回会话宽限时长
func (c *GameConfig) SessionGraceDuration() time.Duration {
	return time.Duration(c.SessionGrace) * time.Minute
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.StartingBalance == 0 {
		cfg.Game.StartingBalance = 1000
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = 15
	}
	if cfg.Game.RollDelay == 0 {
		cfg.Game.RollDelay = 3
	}
	if cfg.Game.RoomPersistence == 0 {
		cfg.Game.RoomPersistence = 5
	}
	if cfg.Game.SessionGrace == 0 {
		cfg.Game.SessionGrace = 30
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			StartingBalance: 1000,
			MaxPlayers:      15,
			RollDelay:       3,
			RoomPersistence: 5,
			SessionGrace:    30,
		},
	}
}
