package feed

import (
	"bytes"
	"context"
	"io"
	"net"
	"path"
	"time"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/jlaffaye/ftp"
)

const (
	// DefaultFTPPath 피드 파일의 기본 경로
	DefaultFTPPath = "/csv_folder/TSGoods.trs"

	defaultFTPPort    = "21"
	defaultFTPTimeout = 30 * time.Second
)

// FTPConfig 피드 파일이 올라오는 FTP 서버의 접속 정보입니다.
type FTPConfig struct {
	Host     string
	User     string
	Password string
	Path     string
	Timeout  time.Duration
}

// RemoveResult 피드 파일 삭제 시도의 결과입니다.
type RemoveResult struct {
	Dir     string
	Entries []string
	Deleted bool
}

// ftpConn FTPSource가 사용하는 FTP 명령의 최소 집합입니다.
type ftpConn interface {
	Login(user, password string) error
	Retrieve(path string) (io.ReadCloser, error)
	NameList(dir string) ([]string, error)
	Delete(path string) error
	Quit() error
}

// FTPSource FTP 서버에서 피드 파일을 내려받고, 동기화가 끝나면 삭제합니다.
type FTPSource struct {
	cfg  FTPConfig
	dial func(ctx context.Context) (ftpConn, error)
}

// NewFTPSource FTPSource를 생성합니다.
func NewFTPSource(cfg FTPConfig) *FTPSource {
	if cfg.Path == "" {
		cfg.Path = DefaultFTPPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFTPTimeout
	}

	s := &FTPSource{cfg: cfg}
	s.dial = s.dialServer

	return s
}

// Path 피드 파일 경로를 반환합니다.
func (s *FTPSource) Path() string {
	return s.cfg.Path
}

func (s *FTPSource) dialServer(ctx context.Context) (ftpConn, error) {
	addr := s.cfg.Host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, defaultFTPPort)
	}

	c, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.cfg.Timeout))
	if err != nil {
		return nil, err
	}

	return &serverConn{c: c}, nil
}

// Fetch 피드 파일 전체를 내려받습니다.
func (s *FTPSource) Fetch(ctx context.Context) ([]byte, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.quit(conn)

	r, err := conn.Retrieve(s.cfg.Path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.NotFound, "FTP에서 피드 파일을 가져오지 못했습니다: '%s'", s.cfg.Path)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "FTP 피드 파일 수신 중 오류가 발생했습니다: '%s'", s.cfg.Path)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"path":  s.cfg.Path,
		"bytes": buf.Len(),
	}).Info("FTP 피드 파일 수신 완료")

	return buf.Bytes(), nil
}

// Remove 피드 파일이 있는 디렉토리를 조회하고, 파일이 존재하면 삭제합니다.
func (s *FTPSource) Remove(ctx context.Context) (RemoveResult, error) {
	dir, name := path.Split(s.cfg.Path)
	if dir == "" {
		dir = "/"
	}
	result := RemoveResult{Dir: dir}

	conn, err := s.connect(ctx)
	if err != nil {
		return result, err
	}
	defer s.quit(conn)

	entries, err := conn.NameList(dir)
	if err != nil {
		return result, apperrors.Wrapf(err, apperrors.Unavailable, "FTP 디렉토리를 조회하지 못했습니다: '%s'", dir)
	}
	result.Entries = entries

	found := false
	for _, e := range entries {
		if path.Base(e) == name {
			found = true
			break
		}
	}
	if !found {
		return result, nil
	}

	if err := conn.Delete(s.cfg.Path); err != nil {
		return result, apperrors.Wrapf(err, apperrors.ExecutionFailed, "FTP 피드 파일을 삭제하지 못했습니다: '%s'", s.cfg.Path)
	}
	result.Deleted = true

	return result, nil
}

func (s *FTPSource) connect(ctx context.Context) (ftpConn, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "FTP 서버에 연결하지 못했습니다: '%s'", s.cfg.Host)
	}

	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		s.quit(conn)
		return nil, apperrors.Wrap(err, apperrors.Unauthorized, "FTP 로그인에 실패했습니다")
	}

	return conn, nil
}

func (s *FTPSource) quit(conn ftpConn) {
	if err := conn.Quit(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"host":  s.cfg.Host,
			"error": err,
		}).Warn("FTP 연결 종료 중 오류가 발생했습니다")
	}
}

type serverConn struct {
	c *ftp.ServerConn
}

func (s *serverConn) Login(user, password string) error { return s.c.Login(user, password) }

func (s *serverConn) Retrieve(p string) (io.ReadCloser, error) { return s.c.Retr(p) }

func (s *serverConn) NameList(dir string) ([]string, error) { return s.c.NameList(dir) }

func (s *serverConn) Delete(p string) error { return s.c.Delete(p) }

func (s *serverConn) Quit() error { return s.c.Quit() }
