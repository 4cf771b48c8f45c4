package classroom

import "time"

type Mark struct {
	Id         int64     `json:"id"`
	ClassId    string    `json:"classId"`
	StudentId  string    `json:"studentId"`
	LessonId   string    `json:"lessonId"`
	Value      string    `json:"value"`
	CreateTime time.Time `json:"createTime"`
}

type GradeBookResp struct {
	Marks []*Mark `json:"marks"`
}

type ExportGradeBookResp struct {
	FileName string
	Data     []byte
}

type RecordMarkReq struct {
	ClassId   string `path:"classId"`
	StudentId string `json:"studentId" vd:"len($)>0"`
	LessonId  string `json:"lessonId" vd:"len($)>0"`
	Value     string `json:"value" vd:"len($)>0"`
}
