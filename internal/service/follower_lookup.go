package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FollowerNotFound 查询不到时返回的哨兵值。对调用方来说这是正常结果，不是错误
const FollowerNotFound = "NOT_FOUND"

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// 页面内嵌数据里的粉丝数字段
var followerPattern = regexp.MustCompile(`"edge_followed_by":\s*\{\s*"count":\s*(\d+)`)

// FollowerResult 查询结果
type FollowerResult struct {
	Username  string `json:"username"`
	Followers string `json:"followers"`
}

// profileInfoResponse 主路径结构化响应
type profileInfoResponse struct {
	Data struct {
		User *struct {
			EdgeFollowedBy struct {
				Count int64 `json:"count"`
			} `json:"edge_followed_by"`
			FollowerCount int64 `json:"follower_count"`
		} `json:"user"`
	} `json:"data"`
}

// FollowerLookupService 查询公开主页的粉丝数。
// 主路径走结构化接口；主路径出错时退回抓取 HTML 正则提取。
// 这是对不受控外部站点的 best-effort 抓取，对方改版时结果静默退化为 NOT_FOUND，
// 任何情况下都不向调用方抛错。
type FollowerLookupService struct {
	httpClient *resty.Client
	apiBase    string // 结构化接口 base，如 https://www.instagram.com
	pageBase   string // 主页 base，通常与 apiBase 相同，测试时可分开注入
	logger     *zap.Logger
}

func NewFollowerLookupService(apiBase, pageBase string, logger *zap.Logger) *FollowerLookupService {
	client := resty.New().
		SetTimeout(8 * time.Second).
		SetHeader("User-Agent", browserUserAgent)

	return &FollowerLookupService{
		httpClient: client,
		apiBase:    apiBase,
		pageBase:   pageBase,
		logger:     logger,
	}
}

// Lookup 返回 username 的粉丝数显示串，查不到返回 NOT_FOUND，从不返回 error
func (s *FollowerLookupService) Lookup(ctx context.Context, username string) FollowerResult {
	result := FollowerResult{Username: username, Followers: FollowerNotFound}
	if username == "" {
		return result
	}

	count, err := s.fetchStructured(ctx, username)
	if err == nil {
		// 主路径响应合法：即使没有用户对象也直接落到 NOT_FOUND，
		// 不再尝试 fallback（与抓取目标的历史行为保持一致）
		if count != "" {
			result.Followers = count
		}
		return result
	}

	s.logger.Warn("Follower primary lookup failed, trying page scrape",
		zap.String("username", username),
		zap.Error(err),
	)

	if count, err := s.scrapePage(ctx, username); err == nil && count != "" {
		result.Followers = count
		return result
	} else if err != nil {
		s.logger.Warn("Follower fallback lookup failed",
			zap.String("username", username),
			zap.Error(err),
		)
	}
	return result
}

// fetchStructured 主路径：结构化接口。
// 返回 ("", nil) 表示响应合法但无用户对象或计数为零
func (s *FollowerLookupService) fetchStructured(ctx context.Context, username string) (string, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("X-IG-App-ID", "936619743392459").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetHeader("Referer", s.pageBase+"/"+username+"/").
		Get(s.apiBase + "/api/v1/users/web_profile_info/?username=" + username)
	if err != nil {
		return "", fmt.Errorf("profile info request: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", fmt.Errorf("profile info request: status %d", resp.StatusCode())
	}

	var body profileInfoResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode profile info: %w", err)
	}
	user := body.Data.User
	if user == nil {
		return "", nil
	}
	count := user.EdgeFollowedBy.Count
	if count == 0 {
		count = user.FollowerCount
	}
	if count == 0 {
		return "", nil
	}
	return strconv.FormatInt(count, 10), nil
}

// scrapePage 兜底路径：抓主页 HTML 正则取数
func (s *FollowerLookupService) scrapePage(ctx context.Context, username string) (string, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.pageBase + "/" + username + "/")
	if err != nil {
		return "", fmt.Errorf("profile page request: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", fmt.Errorf("profile page request: status %d", resp.StatusCode())
	}

	m := followerPattern.FindSubmatch(resp.Body())
	if m == nil {
		return "", nil
	}
	return string(m[1]), nil
}
