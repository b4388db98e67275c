package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ByLCY/cardpress/api"
	"github.com/ByLCY/cardpress/fetch"
	"github.com/ByLCY/cardpress/fonts"
	canvasrenderer "github.com/ByLCY/cardpress/renderer/canvas"
	"github.com/ByLCY/cardpress/template"
)

// 字体从固定的相对目录加载；缺失不阻止启动，只会让对应端点持续返回 500。
const fontDir = "fonts"

func main() {
	set := fonts.NewSet()
	loadFont(set, template.BodyFamily, template.BodyWeight, filepath.Join(fontDir, "Roboto-Bold.ttf"))
	loadFont(set, template.DisplayFamily, template.DisplayWeight, filepath.Join(fontDir, "BebasNeue-Regular.ttf"))

	s := api.NewServer(set, fetch.NewFetcher(), canvasrenderer.NewRenderer(set))

	r := gin.Default()
	r.Use(cors.Default())
	api.RegisterRoutes(r, s)

	port := os.Getenv("PORT")
	if port == "" {
		port = "45444"
	}
	log.Printf("Movie Card API running at http://localhost:%s", port)
	log.Printf("Example: GET http://localhost:%s/api/example", port)
	log.Printf("Health: GET http://localhost:%s/api/health", port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// loadFont 注册一个字体文件，失败时仅告警。
func loadFont(set *fonts.Set, family string, weight int, path string) {
	if err := set.RegisterFile(family, weight, false, path); err != nil {
		log.Printf("警告：加载字体 %s 失败：%v", path, err)
	}
}
