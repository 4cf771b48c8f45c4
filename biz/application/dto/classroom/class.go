package classroom

import "time"

type Lesson struct {
	Id               string   `json:"id" copier:"-"`
	Title            string   `json:"title"`
	AttachedElements []string `json:"attachedElements"`
}

type UserBrief struct {
	Id      string `json:"id" copier:"-"`
	Login   string `json:"login"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type Class struct {
	Id          string    `json:"id" copier:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AccessToken string    `json:"accessToken"`
	Owners      []string  `json:"owners"`
	Members     []string  `json:"members"`
	Lessons     []*Lesson `json:"lessons,omitempty" copier:"-"`
	CreateTime  time.Time `json:"createTime"`
}

type ListClassesResp struct {
	Classes       []*Class        `json:"classes"`
	Notifications []*Notification `json:"notifications"`
}

type ConnectClassReq struct {
	AccessToken string `json:"accessToken" vd:"len($)>0"`
}

type CreateClassReq struct {
	Title       string `json:"title" vd:"len($)>0"`
	Description string `json:"description"`
}

type RemoveMemberReq struct {
	ClassId  string `path:"classId"`
	MemberId string `json:"memberId" vd:"len($)>0"`
}

type ClassIdReq struct {
	ClassId string `path:"classId"`
}

type ClassInfoResp struct {
	Class   *Class       `json:"class"`
	Owners  []*UserBrief `json:"owners"`
	Members []*UserBrief `json:"members"`
	Owner   bool         `json:"owner"`
}

type UpdateClassReq struct {
	ClassId     string  `path:"classId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateOwnersReq struct {
	ClassId string   `path:"classId"`
	Owners  []string `json:"owners" vd:"len($)>0"`
}
