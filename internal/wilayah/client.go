package wilayah

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client - прокси к справочнику адресов wilayah.id.
// Апстрим best-effort: его недоступность не должна ломать наши ответы,
// вызывающий код деградирует до пустого списка с warning в логе.
type Client struct {
	baseURL string
	http    *http.Client
}

// Region - один элемент справочника (провинция/округ/район/деревня)
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type upstreamResponse struct {
	Data []Region `json:"data"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Provinces возвращает список провинций
func (c *Client) Provinces() ([]Region, error) {
	return c.fetch("/provinces.json")
}

// Regencies возвращает округа провинции
func (c *Client) Regencies(provinceCode string) ([]Region, error) {
	return c.fetch(fmt.Sprintf("/regencies/%s.json", url.PathEscape(provinceCode)))
}

// Districts возвращает районы округа
func (c *Client) Districts(regencyCode string) ([]Region, error) {
	return c.fetch(fmt.Sprintf("/districts/%s.json", url.PathEscape(regencyCode)))
}

// Villages возвращает деревни района
func (c *Client) Villages(districtCode string) ([]Region, error) {
	return c.fetch(fmt.Sprintf("/villages/%s.json", url.PathEscape(districtCode)))
}

func (c *Client) fetch(path string) ([]Region, error) {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("wilayah request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wilayah upstream returned %d", resp.StatusCode)
	}

	var out upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("wilayah decode failed: %w", err)
	}
	return out.Data, nil
}
