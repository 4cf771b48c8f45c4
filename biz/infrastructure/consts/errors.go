package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// Code 返回错误类别
func (en *Errno) Code() codes.Code {
	return en.code
}

// Is 同类别的错误视为相等, 便于 errors.Is 判断
func (en *Errno) Is(target error) bool {
	var t *Errno
	if !errors.As(target, &t) {
		return false
	}
	return t.code == en.code
}

// WithMsg 派生一个同类别、不同提示信息的错误
func (en *Errno) WithMsg(msg string) *Errno {
	return NewErrno(en.code, errors.New(msg))
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 错误类别
var (
	ErrBadRequest   = NewErrno(codes.InvalidArgument, errors.New("bad request"))
	ErrNotFound     = NewErrno(codes.NotFound, errors.New("not found"))
	ErrConflict     = NewErrno(codes.AlreadyExists, errors.New("conflict"))
	ErrForbidden    = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrUnauthorized = NewErrno(codes.Unauthenticated, errors.New("unauthorized"))
)

// 业务错误
var (
	ErrNotAuthentication = ErrUnauthorized.WithMsg("not authentication")
	ErrWrongPath         = ErrBadRequest.WithMsg("Wrong path")
	ErrClassNotFound     = ErrNotFound.WithMsg("Class not found")
	ErrUserNotFound      = ErrNotFound.WithMsg("User not found")
	ErrLessonNotFound    = ErrNotFound.WithMsg("Lesson not found")
	ErrAlreadyInClass    = ErrConflict.WithMsg("You are already in class")
	ErrLastOwner         = NewErrno(codes.FailedPrecondition, errors.New("Class must keep at least one owner"))
	ErrRemoveClass       = ErrForbidden.WithMsg("You can not remove class")
	ErrOpenClass         = ErrForbidden.WithMsg("You can not open this classroom")
	ErrUpdateClass       = ErrForbidden.WithMsg("You can not update class info")
	ErrManageOwners      = ErrForbidden.WithMsg("You can not manage class owners")
	ErrRemoveMember      = ErrForbidden.WithMsg("You can not remove members")
	ErrOpenGradeBook     = ErrForbidden.WithMsg("You can not open the grade book")
	ErrRecordMark        = ErrForbidden.WithMsg("You can not put marks in this class")
	ErrRepeatedSignUp    = ErrConflict.WithMsg("User with this login already exists")
	ErrSignIn            = ErrUnauthorized.WithMsg("Please check your login credentials")
	ErrRefreshToken      = ErrUnauthorized.WithMsg("Access Denied")
	ErrSessionRevoked    = ErrUnauthorized.WithMsg("Session is over, please sign in again")
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = ErrBadRequest.WithMsg("参数错误")
	ErrCall          = NewErrno(codes.Unknown, errors.New("调用接口失败，请重试"))
)

// 数据库相关错误
var (
	ErrInvalidObjectId = ErrBadRequest.WithMsg("无效的id")
	ErrUpdate          = NewErrno(codes.Internal, errors.New("更新失败"))
	ErrCreateClass     = NewErrno(codes.Internal, errors.New("创建班级失败"))
	ErrAccessToken     = NewErrno(codes.Internal, errors.New("生成班级邀请码失败"))
	ErrGradeBook       = NewErrno(codes.Internal, errors.New("获取成绩册失败"))
	ErrSignUp          = NewErrno(codes.Internal, errors.New("注册失败，请重试"))
)
