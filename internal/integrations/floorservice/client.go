// Package floorservice клиент внешнего сервиса справочника этажей
package floorservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
)

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса этажей. Реализует тот же контракт, что и репозиторий этажей:
// отсутствующий этаж - floor.ErrFloorNotFound.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetByNumber получает этаж по номеру
func (c *Client) GetByNumber(ctx context.Context, number int) (*domain.Floor, error) {
	var floor Floor
	if err := c.get(ctx, fmt.Sprintf("%s/internal/floors/%d", c.baseURL, number), &floor); err != nil {
		return nil, err
	}
	return floor.toDomain(), nil
}

// List все этажи по возрастанию номера
func (c *Client) List(ctx context.Context) ([]*domain.Floor, error) {
	var floors []Floor
	if err := c.get(ctx, c.baseURL+"/internal/floors", &floors); err != nil {
		return nil, err
	}

	result := make([]*domain.Floor, 0, len(floors))
	for _, f := range floors {
		result = append(result, f.toDomain())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })

	c.log.Info("floorservice: fetched %d floors", len(result))
	return result, nil
}

func (c *Client) get(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("floorservice: request %s failed: %v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return floorRepo.ErrFloorNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
