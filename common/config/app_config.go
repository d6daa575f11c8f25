package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "TAISCORE"

var (
	mu   sync.RWMutex
	conf = Default()
)

type Config struct {
	AppName string            `mapstructure:"appName"`
	Log     LogConf           `mapstructure:"log"`
	Cache   CacheConf         `mapstructure:"cache"`
	Batch   BatchConf         `mapstructure:"batch"`
	Aliases map[string]string `mapstructure:"aliases"` // 识别器原始标签 -> 标准牌名
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// CacheConf 和牌判定的本地缓存
type CacheConf struct {
	Enabled bool          `mapstructure:"enabled"`
	MaxCost int64         `mapstructure:"maxCost"` // 最多缓存的条目数，每条成本记 1
	TTL     time.Duration `mapstructure:"ttl"`
}

type BatchConf struct {
	Workers int `mapstructure:"workers"`
}

func Default() *Config {
	return &Config{
		AppName: "taiscore",
		Log:     LogConf{Level: "info"},
		Cache:   CacheConf{Enabled: true, MaxCost: 1 << 16, TTL: 10 * time.Minute},
		Batch:   BatchConf{Workers: 4},
		Aliases: map[string]string{},
	}
}

// Get 当前生效的配置
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}

func set(c *Config) {
	mu.Lock()
	conf = c
	mu.Unlock()
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("appName", d.AppName)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.maxCost", d.Cache.MaxCost)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	c := Default()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 1
	}
	if c.Cache.MaxCost <= 0 {
		c.Cache.Enabled = false
	}
	return c, nil
}

// Load 读取配置文件，configFile 为空时只用默认值和环境变量
func Load(configFile string) (*Config, error) {
	v := newViper(configFile)
	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}
	c, err := decode(v)
	if err != nil {
		return nil, err
	}
	set(c)
	return c, nil
}

// Watch 监听配置文件，修改后重新解析并回调；解析失败时保留旧配置
func Watch(configFile string, onChange func(*Config, error)) error {
	if configFile == "" {
		return nil
	}
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("初始化配置文件监听失败: %w", err)
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
			return
		}
		c, err := decode(v)
		if err == nil {
			set(c)
		}
		if onChange != nil {
			onChange(c, err)
		}
	})
	v.WatchConfig()
	return nil
}
