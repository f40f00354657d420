package economicssvc

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/models"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// maxBatchLineBytes giới hạn độ dài một dòng trong batch (các wrapper chứa mảng records có thể rất dài)
const maxBatchLineBytes = 16 * 1024 * 1024

// ParseEconomicsBatch parse một batch thô thành danh sách EconomicsRecord.
// Mỗi dòng là một JSON object: hoặc record nằm trực tiếp ở top level,
// hoặc wrapper một cấp chứa record/mảng records dưới một field có tên bất kỳ.
// Phân biệt bằng sự có mặt của các key sales/fees/ads.
// Dòng parse lỗi bị bỏ qua và log, không fatal. Batch rỗng trả về slice rỗng.
func ParseEconomicsBatch(raw []byte) []models.EconomicsRecord {
	records := make([]models.EconomicsRecord, 0)
	if len(raw) == 0 {
		return records
	}

	log := logger.GetAppLogger()

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), maxBatchLineBytes)

	lineNo := 0
	dropped := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		parsed, err := parseBatchLine(line)
		if err != nil {
			dropped++
			log.WithField("line", lineNo).WithError(err).Warn("Bỏ qua dòng batch economics không parse được")
			continue
		}
		records = append(records, parsed...)
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("Đọc batch economics bị cắt giữa chừng")
	}
	if dropped > 0 {
		log.WithField("dropped", dropped).Warn("Một số dòng batch economics bị bỏ qua do lỗi parse")
	}

	return records
}

// parseBatchLine parse một dòng thành một hoặc nhiều records
func parseBatchLine(line []byte) ([]models.EconomicsRecord, error) {
	var rawFields map[string]json.RawMessage
	if err := json.Unmarshal(line, &rawFields); err != nil {
		return nil, err
	}

	// Record nằm trực tiếp ở top level khi có key sales/fees/ads
	if isRecordObject(rawFields) {
		var record models.EconomicsRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, err
		}
		return []models.EconomicsRecord{record}, nil
	}

	// Wrapper một cấp: tìm field chứa record hoặc mảng records
	sawEmptyArray := false
	for _, value := range rawFields {
		value = bytes.TrimSpace(value)
		if len(value) == 0 {
			continue
		}

		if value[0] == '[' {
			var wrapped []models.EconomicsRecord
			if err := json.Unmarshal(value, &wrapped); err != nil {
				continue
			}
			if len(wrapped) == 0 {
				// Mảng records rỗng là input hợp lệ, không phải dòng lỗi.
				// Vẫn quét tiếp các field còn lại phòng khi record nằm ở field khác.
				sawEmptyArray = true
				continue
			}
			return wrapped, nil
		}

		if value[0] == '{' {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(value, &nested); err != nil {
				continue
			}
			if !isRecordObject(nested) {
				continue
			}
			var record models.EconomicsRecord
			if err := json.Unmarshal(value, &record); err != nil {
				continue
			}
			return []models.EconomicsRecord{record}, nil
		}
	}

	if sawEmptyArray {
		return []models.EconomicsRecord{}, nil
	}
	return nil, errNoRecordInLine
}

// isRecordObject kiểm tra object có phải một record (có key sales/fees/ads) không
func isRecordObject(fields map[string]json.RawMessage) bool {
	if _, ok := fields["sales"]; ok {
		return true
	}
	if _, ok := fields["fees"]; ok {
		return true
	}
	if _, ok := fields["ads"]; ok {
		return true
	}
	return false
}

// errNoRecordInLine dùng khi dòng là JSON hợp lệ nhưng không chứa record nào
var errNoRecordInLine = &parseError{msg: "không tìm thấy record trong dòng"}

type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
