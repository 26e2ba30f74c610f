package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"marketplace_dev_v1/internal/api/dto"
)

// ==================== CSVService 商品 CSV 导入 ====================

// CSVService 解析商品 CSV，支持本地上传与远程 URL 两种来源
// 列名不区分大小写，name 与 price 必填，description / image_url 可选
type CSVService struct {
	client *resty.Client
}

// NewCSVService 创建 CSV 服务
func NewCSVService() *CSVService {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)
	return &CSVService{client: client}
}

// ParseProducts 解析 CSV 流为商品行
func (s *CSVService) ParseProducts(r io.Reader) ([]dto.BulkProductRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// 允许行间列数不一致，缺失列按空处理
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV 文件为空")
	}
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("CSV 缺少 name 列")
	}
	priceIdx, ok := cols["price"]
	if !ok {
		return nil, fmt.Errorf("CSV 缺少 price 列")
	}
	descIdx, hasDesc := cols["description"]
	imageIdx, hasImage := cols["image_url"]

	var rows []dto.BulkProductRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: 解析失败: %w", line, err)
		}

		name := field(record, nameIdx)
		if name == "" {
			return nil, fmt.Errorf("第 %d 行: 商品名称不能为空", line)
		}

		priceStr := field(record, priceIdx)
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("第 %d 行: 价格不合法: %q", line, priceStr)
		}

		row := dto.BulkProductRow{Name: name, Price: price}
		if hasDesc {
			row.Description = field(record, descIdx)
		}
		if hasImage {
			row.ImageURL = field(record, imageIdx)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV 中没有有效数据行")
	}
	return rows, nil
}

// FetchAndParse 拉取远程 CSV 并解析
func (s *CSVService) FetchAndParse(ctx context.Context, sourceURL string) ([]dto.BulkProductRow, error) {
	resp, err := s.client.R().SetContext(ctx).Get(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("拉取 CSV 失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("拉取 CSV 失败: HTTP %d", resp.StatusCode())
	}
	return s.ParseProducts(strings.NewReader(resp.String()))
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
