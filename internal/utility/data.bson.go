package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CustomBson dùng để thực hiện các thao tác bson tùy chỉnh
// như $set, $push từ struct thay vì viết bson.M thủ công
type CustomBson struct{}

// BsonWrapper chứa các toán tử bson cơ bản ($set, $unset, $push).
// Gán struct dữ liệu vào trường tương ứng rồi convert sang map để dùng trong truy vấn mongo.
type BsonWrapper struct {
	Set   interface{} `json:"$set,omitempty" bson:"$set,omitempty"`
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`
	Push  interface{} `json:"$push,omitempty" bson:"$push,omitempty"`
}

// ToMap chuyển đổi struct thành map[string]interface{} qua bson marshal/unmarshal.
// Tôn trọng các bson tags trên struct.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	itr, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	err = bson.Unmarshal(itr, &stringInterfaceMap)
	if err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return stringInterfaceMap, err
}

// Set tạo truy vấn $set từ struct dữ liệu
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Set: data}
	return ToMap(s)
}

// Push tạo truy vấn $push từ struct dữ liệu
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Push: data}
	return ToMap(s)
}

// Unset tạo truy vấn $unset từ struct dữ liệu
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Unset: data}
	return ToMap(s)
}
