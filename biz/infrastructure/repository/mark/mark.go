package mark

import "time"

// Mark 对应数据库中的 marks 表, 一条记录即成绩册中的一个格子
type Mark struct {
	ID         int64     `db:"id" json:"id"`
	ClassID    string    `db:"class_id" json:"classId"`
	StudentID  string    `db:"student_id" json:"studentId"`
	LessonID   string    `db:"lesson_id" json:"lessonId"`
	Value      string    `db:"value" json:"value"`
	CreateTime time.Time `db:"create_time" json:"createTime"`
}
