package lesson

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson 课时, 内容由外部服务维护, 这里只读
type Lesson struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID          string             `bson:"class_id" json:"classId"`
	Title            string             `bson:"title" json:"title"`
	AttachedElements []string           `bson:"attached_elements" json:"attachedElements"`
	CreateTime       time.Time          `bson:"create_time" json:"createTime"`
}
