package appointment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// formData значения дополнительных полей формы (колонка JSONB)
type formData map[string]string

func (f formData) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(f))
}

func (f *formData) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = formData{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("form_data: unsupported scan type %T", src)
	}

	result := make(map[string]string)
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("form_data: %w", err)
	}
	*f = result
	return nil
}
