package services

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
)

// sitemapURLSet sitemap.xml的urlset结构
type sitemapURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// SiteFetcher 目标网站上下文抓取器
// 优先读取sitemap，为空或失败时回退为抓取首页锚链接
type SiteFetcher struct {
	cfg           *config.Config
	sitemapClient *http.Client
	pageClient    *http.Client
}

// NewSiteFetcher 创建网站上下文抓取器
func NewSiteFetcher(cfg *config.Config) *SiteFetcher {
	timeout := time.Duration(cfg.Site.SitemapTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second // 默认超时
	}
	return &SiteFetcher{
		cfg:           cfg,
		sitemapClient: &http.Client{Timeout: timeout},
		pageClient:    &http.Client{},
	}
}

// FetchSiteContext 抓取目标网站的页面链接作为聊天上下文
// 尽力而为：任何失败只记录日志并返回空字符串，绝不中断聊天请求
func (f *SiteFetcher) FetchSiteContext(websiteURL string) string {
	if websiteURL == "" {
		return ""
	}

	base, err := url.Parse(websiteURL)
	if err != nil {
		logger.Warn("无法解析目标网站地址", "website_url", websiteURL, "error", err)
		return ""
	}

	locs, err := f.fetchSitemap(base)
	if err != nil {
		logger.Warn("获取sitemap失败，回退为抓取首页", "website_url", websiteURL, "error", err)
	} else if len(locs) > 0 {
		logger.Info("sitemap解析成功", "website_url", websiteURL, "url_count", len(locs))
		return fmt.Sprintf("Here are some pages found from %s:\n%s", websiteURL, strings.Join(locs, "\n"))
	}

	// sitemap失败或为空时回退为抓取首页锚链接
	links, err := f.scrapeLinks(base, websiteURL)
	if err != nil {
		logger.Warn("无法获取sitemap或页面", "website_url", websiteURL, "error", err)
		return ""
	}

	logger.Info("首页抓取完成", "website_url", websiteURL, "link_count", len(links))
	return fmt.Sprintf("Some pages found:\n%s", strings.Join(links, "\n"))
}

// fetchSitemap 请求并解析 {base}/sitemap.xml，返回其中的loc列表
func (f *SiteFetcher) fetchSitemap(base *url.URL) ([]string, error) {
	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()

	resp, err := f.sitemapClient.Get(sitemapURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap请求失败 (HTTP %d)", resp.StatusCode)
	}

	var urlSet sitemapURLSet
	if err := xml.NewDecoder(resp.Body).Decode(&urlSet); err != nil {
		return nil, err
	}

	locs := make([]string, 0, len(urlSet.URLs))
	for _, u := range urlSet.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// scrapeLinks 抓取网站首页，收集锚链接并解析为绝对地址，数量有上限
func (f *SiteFetcher) scrapeLinks(base *url.URL, websiteURL string) ([]string, error) {
	resp, err := f.pageClient.Get(websiteURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("页面请求失败 (HTTP %d)", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	maxLinks := f.cfg.Site.MaxScrapeLinks
	if maxLinks <= 0 {
		maxLinks = 10 // 默认上限
	}

	links := make([]string, 0, maxLinks)
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return true
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return true
		}
		links = append(links, resolved.String())
		return len(links) < maxLinks
	})

	return links, nil
}
