package utility

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID chuyển đổi string hex thành primitive.ObjectID.
// Trả về NilObjectID nếu string không hợp lệ (caller đã validate trước bằng IsValidObjectID).
func String2ObjectID(id string) primitive.ObjectID {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectID
}

// ObjectID2String chuyển đổi primitive.ObjectID thành string hex
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}
