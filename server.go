package main

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type statsSource interface {
	Stats() (Stats, error)
}

type visitRecorder interface {
	RecordVisit(hashedIP, userAgent, path string, at time.Time) error
}

const visitRetention = 365 * 24 * time.Hour

// hashIP keeps visitor counts without storing raw addresses.
func hashIP(salt, ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func visitorTracking(recorder visitRecorder, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if recorder == nil || path == "/healthz" {
			c.Next()
			return
		}

		// Respect Do Not Track
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed := hashIP(salt, c.ClientIP())
		ua := c.GetHeader("User-Agent")
		go func() {
			if err := recorder.RecordVisit(hashed, ua, path, time.Now()); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

type sectionSummary struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Command string `json:"command"`
}

func newRouter(content *Content, stats statsSource, recorder visitRecorder, salt string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(visitorTracking(recorder, salt))

	currentStats := func() Stats {
		if stats == nil {
			return Stats{}
		}
		st, err := stats.Stats()
		if err != nil {
			log.Printf("Error reading stats: %v", err)
			return Stats{}
		}
		return st
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/profile", func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"profile":             content.Profile,
			"years_of_experience": yearsOfExperience(content.careerStart(now), now),
		})
	})

	r.GET("/api/sections", func(c *gin.Context) {
		out := []sectionSummary{}
		for _, cfg := range sectionConfigs {
			sc, ok := content.Section(cfg.Name)
			if !ok {
				continue
			}
			out = append(out, sectionSummary{Name: cfg.Name, Title: sc.Title, Command: cfg.Command})
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/api/sections/:name", func(c *gin.Context) {
		name := c.Param("name")
		lines, ok := SectionLines(content, name, currentStats(), time.Now())
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		cfg, _ := sectionByName(name)
		c.JSON(http.StatusOK, gin.H{
			"name":    name,
			"command": cfg.Command,
			"lines":   lines,
		})
	})

	r.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, currentStats())
	})

	return r
}

func runServer(cfg *Config, content *Content, store *Store) error {
	salt := generateSalt()
	var stats statsSource
	var recorder visitRecorder
	if store != nil {
		stats, recorder = store, store
		if _, err := store.PruneVisits(time.Now(), visitRetention); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	log.Printf("Listening on %s", cfg.Listen)
	return newRouter(content, stats, recorder, salt).Run(cfg.Listen)
}
