package economicssvc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// maxFeedBodyBytes chặn upstream trả body quá lớn làm cạn bộ nhớ
const maxFeedBodyBytes = 512 * 1024 * 1024

// HTTPFeedProvider lấy batch economics từ một HTTP endpoint.
// Endpoint nhận các query param accountId/marketplaceId/startDate/endDate
// và trả về body NDJSON, mỗi dòng một record hoặc wrapper.
type HTTPFeedProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFeedProvider tạo provider từ config. Trả về nil khi không cấu hình
// feed URL: engine vẫn chạy được các path truy vấn, refresh sẽ fallback snapshot cũ.
func NewHTTPFeedProvider() *HTTPFeedProvider {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil || cfg.EconomicsFeedURL == "" {
		return nil
	}

	timeout := 120 * time.Second
	if cfg.EconomicsFeedTimeout > 0 {
		timeout = time.Duration(cfg.EconomicsFeedTimeout) * time.Second
	}

	return &HTTPFeedProvider{
		baseURL: cfg.EconomicsFeedURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchEconomicsBatch gọi upstream lấy batch thô cho account trong khoảng ngày
func (p *HTTPFeedProvider) FetchEconomicsBatch(ctx context.Context, accountID, marketplaceID, startDate, endDate string) ([]byte, error) {
	query := url.Values{}
	query.Set("accountId", accountID)
	query.Set("marketplaceId", marketplaceID)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tạo request upstream thất bại: %w", common.ErrUpstreamFetch)
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := p.client.Do(req)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Gọi upstream economics thất bại")
		return nil, common.ErrUpstreamFetch
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.GetAppLogger().WithField("status", resp.StatusCode).Warn("Upstream economics trả về status lỗi")
		return nil, common.ErrUpstreamFetch
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodyBytes))
	if err != nil {
		return nil, common.ErrUpstreamFetch
	}
	return body, nil
}
