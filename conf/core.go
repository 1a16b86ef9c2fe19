package conf

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/zeptools/pricequote/docs"
	"github.com/zeptools/pricequote/sessions"
	"github.com/zeptools/pricequote/sessions/impls/memory"
	"github.com/zeptools/pricequote/sessions/impls/redisstore"
	"github.com/zeptools/pricequote/svc"
	"github.com/zeptools/pricequote/throttle"
	"github.com/zeptools/pricequote/uds"
	"github.com/zeptools/pricequote/web"
)

// Core - common config
type Core struct {
	AppName       string             `json:"app_name"`
	Listen        string             `json:"listen"` // HTTP Server Listen IP:PORT Address
	Host          string             `json:"host"`   // HTTP Host. Can be used to generate public url endpoints
	Document      docs.Conf          `json:"document"`
	Session       sessions.Conf      `json:"session"`
	Store         sessions.StoreConf `json:"store"`
	Throttle      throttle.Conf      `json:"throttle"`
	UDSSocketPath string             `json:"uds_socket_path"` // empty disables the admin socket

	AppRoot    string             `json:"-"` // Filled from compiled paths
	RootCtx    context.Context    `json:"-"` // Global Context with RootCancel
	RootCancel context.CancelFunc `json:"-"` // CancelFunc for RootCtx

	UDSService     *uds.Service      `json:"-"` // PrepareUDSService
	WebService     *web.Service      `json:"-"` // PrepareWebService
	ThrottleStore  *throttle.Store   `json:"-"` // PrepareThrottleStore
	SessionManager *sessions.Manager `json:"-"` // PrepareSessionManager
	SessionStore   sessions.Store    `json:"-"` // PrepareSessionStore
	Composer       *docs.Composer    `json:"-"` // PrepareComposer
	SessionLocks   *sync.Map         `json:"-"` // map[string]*sync.Mutex, per-session request serialization
	ActionLocks    *sync.Map         `json:"-"` // map[string]struct{}

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	confFilePath := filepath.Join(appRoot, "config", ".core.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.applyDefaults()
	c.prepareDefaultFeatures()
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	c.Session.ApplyDefaults()
	c.Throttle.ApplyDefaults()
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Document.LogoDir == "" {
		c.Document.LogoDir = "assets"
	}
	if !filepath.IsAbs(c.Document.LogoDir) {
		c.Document.LogoDir = filepath.Join(c.AppRoot, c.Document.LogoDir)
	}
}

func (c *Core) prepareDefaultFeatures() {
	c.SessionLocks = &sync.Map{}
	c.ActionLocks = &sync.Map{}
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s) // pass the loop var to the param. otherwise, they are captured inside goroutine lazily
	}
	return nil
}

func (c *Core) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

// PrepareSessionManager builds the cookie manager from the session conf.
func (c *Core) PrepareSessionManager() error {
	mgr, err := sessions.NewManager(c.Session)
	if err != nil {
		return fmt.Errorf("PrepareSessionManager: %w", err)
	}
	c.SessionManager = mgr
	return nil
}

// PrepareSessionStore selects and initializes the session store backend.
// The memory store also runs as a cleanup service.
func (c *Core) PrepareSessionStore() error {
	switch c.Store.Type {
	case "memory":
		store := memory.NewStore(c.RootCtx, &c.Store, c.Session)
		c.SessionStore = store
		c.AddService(store)
	case "redis":
		c.SessionStore = redisstore.NewStore(&c.Store, c.Session)
	default:
		return errors.New("unsupported session store type")
	}
	return c.SessionStore.Init()
}

// PrepareComposer builds the document composer from the document conf.
func (c *Core) PrepareComposer() {
	c.Composer = docs.NewComposer(c.Document)
}

// PrepareThrottleStore also registers the document-generation group.
func (c *Core) PrepareThrottleStore() {
	c.ThrottleStore = throttle.NewStore(
		c.RootCtx,
		time.Duration(c.Throttle.CleanupCycleMin)*time.Minute,
		time.Duration(c.Throttle.CleanupOlderMin)*time.Minute,
	)
	c.ThrottleStore.SetGroup(web.GenThrottleGroup, c.Throttle.GroupConf())
	c.AddService(c.ThrottleStore)
}

func (c *Core) PrepareUDSService(cmdMap map[string]uds.CmdHnd) {
	c.UDSService = uds.NewService(c.RootCtx, c.UDSSocketPath, cmdMap)
	c.AddService(c.UDSService)
}

func (c *Core) PrepareWebService(addr string, router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, addr, router)
	c.AddService(c.WebService)
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.SessionStore != nil {
		if err := c.SessionStore.Close(); err != nil {
			log.Println("[ERROR] Failed to close session store")
		}
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
