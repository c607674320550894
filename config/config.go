package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	OpenAI struct {
		APIKey     string `yaml:"api_key"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"base_url"`
		MaxTokens  int    `yaml:"max_tokens"`
		TimeoutSec int    `yaml:"timeout_sec"` // 请求超时时间,单位:秒
	} `yaml:"openai"`
	HubSpot struct {
		AccessToken string `yaml:"access_token"`
		BaseURL     string `yaml:"base_url"`
		PostLimit   int    `yaml:"post_limit"`  // 博客文章单次拉取上限
		TimeoutSec  int    `yaml:"timeout_sec"` // 请求超时时间,单位:秒
	} `yaml:"hubspot"`
	Lead struct {
		FormsURL   string `yaml:"forms_url"`
		PortalID   string `yaml:"portal_id"`
		FormID     string `yaml:"form_id"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"lead"`
	Prompt struct {
		FilePath string `yaml:"file_path"` // 提示词模板文件路径
	} `yaml:"prompt"`
	Cache struct {
		RefreshHours int `yaml:"refresh_hours"` // 内容缓存刷新间隔（小时）
	} `yaml:"cache"`
	Site struct {
		SitemapTimeoutSec int `yaml:"sitemap_timeout_sec"` // sitemap请求超时时间,单位:秒
		MaxScrapeLinks    int `yaml:"max_scrape_links"`    // 抓取回退时最多收集的链接数
	} `yaml:"site"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
	} `yaml:"scheduler"`
	Debug struct {
		Enabled             bool `yaml:"enabled"`                // 是否启用debug模式
		CacheRefreshFreqSec int  `yaml:"cache_refresh_freq_sec"` // debug模式下缓存刷新频率，单位：秒
	} `yaml:"debug"`
}

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		// 从环境变量中加载敏感信息
		// OpenAI API密钥
		if envAPIKey := os.Getenv("OPENAI_API_KEY"); envAPIKey != "" {
			cfg.OpenAI.APIKey = envAPIKey
		}

		// HubSpot访问令牌
		if envToken := os.Getenv("HUBSPOT_ACCESS_TOKEN"); envToken != "" {
			cfg.HubSpot.AccessToken = envToken
		}

		applyDefaults(&cfg)
		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	// 设置服务器端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	// 只从环境变量中加载敏感信息
	// OpenAI API密钥
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}

	// HubSpot访问令牌
	if token := os.Getenv("HUBSPOT_ACCESS_TOKEN"); token != "" {
		cfg.HubSpot.AccessToken = token
	}

	// HubSpot表单配置
	if portalID := os.Getenv("HUBSPOT_PORTAL_ID"); portalID != "" {
		cfg.Lead.PortalID = portalID
	}
	if formID := os.Getenv("HUBSPOT_FORM_ID"); formID != "" {
		cfg.Lead.FormID = formID
	}

	applyDefaults(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}

// applyDefaults 为未配置的字段填充默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 10000
	}
	// 计算 Server.Addr 字段
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.OpenAI.MaxTokens <= 0 {
		cfg.OpenAI.MaxTokens = 600
	}

	if cfg.HubSpot.BaseURL == "" {
		cfg.HubSpot.BaseURL = "https://api.hubapi.com"
	}
	if cfg.HubSpot.PostLimit <= 0 {
		cfg.HubSpot.PostLimit = 1000
	}

	if cfg.Lead.FormsURL == "" {
		cfg.Lead.FormsURL = "https://api.hsforms.com"
	}

	if cfg.Prompt.FilePath == "" {
		cfg.Prompt.FilePath = "prompt/chatgptPrompt.txt"
	}

	if cfg.Cache.RefreshHours <= 0 {
		cfg.Cache.RefreshHours = 6
	}

	if cfg.Site.SitemapTimeoutSec <= 0 {
		cfg.Site.SitemapTimeoutSec = 10
	}
	if cfg.Site.MaxScrapeLinks <= 0 {
		cfg.Site.MaxScrapeLinks = 10
	}
}
