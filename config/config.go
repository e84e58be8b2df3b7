package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Chat     ChatConfig     `yaml:"chat"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Image    ImageConfig    `yaml:"image"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type LLMConfig struct {
	Provider    string   `yaml:"provider"` // openai, gemini
	APIURL      string   `yaml:"api_url"`
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	MaxTokens   int      `yaml:"max_tokens"`  // 0 表示不限制，Gemini 的思考 token 也计入上限
	Temperature *float32 `yaml:"temperature"` // 未设置时使用模型默认值，可显式设为 0
}

// ChatConfig 设计助手对话，复用 llm 的地址与密钥
type ChatConfig struct {
	Model     string `yaml:"model"` // 仅 openai 生效，gemini 使用 gemini.model
	MaxTokens int    `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ImageConfig struct {
	APIURL       string        `yaml:"api_url"`
	APIKey       string        `yaml:"api_key"` // 为空时使用 llm.api_key
	Model        string        `yaml:"model"`
	Size         string        `yaml:"size"`
	Quality      string        `yaml:"quality"`
	EditModel    string        `yaml:"edit_model"`
	EditSize     string        `yaml:"edit_size"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // 下载待编辑图片的超时
}

type PipelineConfig struct {
	Cooldown       time.Duration `yaml:"cooldown"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		// .env 不存在时忽略
		if err := godotenv.Load(); err != nil {
			klog.V(6).Infof("未加载 .env: %v", err)
		}

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config.yaml"
		}
		cfg = Load(configPath)
	})
	return cfg
}

// Default 内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Mode: "debug",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			APIURL:      "https://api.openai.com/v1",
			Model:       "gpt-4o",
			Temperature: float32Ptr(0.7),
		},
		Chat: ChatConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 800,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Image: ImageConfig{
			Model:        "dall-e-3",
			Size:         "1024x1024",
			Quality:      "standard",
			EditModel:    "dall-e-2",
			EditSize:     "1024x1024",
			FetchTimeout: 30 * time.Second,
		},
		Pipeline: PipelineConfig{
			Cooldown: time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// Load 读取配置文件，文件不存在时使用默认值，环境变量优先级最高
func Load(path string) *Config {
	config := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			klog.Warningf("配置文件解析失败，使用默认值: path=%s, err=%v", path, err)
			config = Default()
		}
	}

	applyEnv(config)

	if config.Image.APIKey == "" {
		config.Image.APIKey = config.LLM.APIKey
	}
	if config.Image.APIURL == "" {
		config.Image.APIURL = config.LLM.APIURL
	}
	return config
}

// 环境变量优先级高于配置文件
func applyEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}
	if maxTokens := os.Getenv("LLM_MAX_TOKENS"); maxTokens != "" {
		if v, err := strconv.Atoi(maxTokens); err == nil && v >= 0 {
			config.LLM.MaxTokens = v
		} else {
			klog.Warningf("LLM_MAX_TOKENS 无效: %s", maxTokens)
		}
	}
	if temperature := os.Getenv("LLM_TEMPERATURE"); temperature != "" {
		if v, err := strconv.ParseFloat(temperature, 32); err == nil && v >= 0 {
			config.LLM.Temperature = float32Ptr(float32(v))
		} else {
			klog.Warningf("LLM_TEMPERATURE 无效: %s", temperature)
		}
	}
	if model := os.Getenv("CHAT_MODEL_NAME"); model != "" {
		config.Chat.Model = model
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}

	if model := os.Getenv("IMAGE_MODEL_NAME"); model != "" {
		config.Image.Model = model
	}
	if model := os.Getenv("IMAGE_EDIT_MODEL_NAME"); model != "" {
		config.Image.EditModel = model
	}

	if cooldown := os.Getenv("PIPELINE_COOLDOWN"); cooldown != "" {
		if d, err := time.ParseDuration(cooldown); err == nil {
			config.Pipeline.Cooldown = d
		} else {
			klog.Warningf("PIPELINE_COOLDOWN 无效: %s", cooldown)
		}
	}
	if rps := os.Getenv("PIPELINE_RATE_LIMIT_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			config.Pipeline.RateLimitRPS = v
		} else {
			klog.Warningf("PIPELINE_RATE_LIMIT_RPS 无效: %s", rps)
		}
	}
	if burst := os.Getenv("PIPELINE_RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil && v >= 0 {
			config.Pipeline.RateLimitBurst = v
		} else {
			klog.Warningf("PIPELINE_RATE_LIMIT_BURST 无效: %s", burst)
		}
	}
}

func float32Ptr(v float32) *float32 {
	return &v
}
