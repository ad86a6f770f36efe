package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"github.com/gattabara/site/internal/config"
	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/db"
	"github.com/gattabara/site/internal/service"
)

// 演示内容生成器：生成带内联图片的完整文档并通过 ContentStore 保存，
// 图片会像后台保存一样被写入上传目录。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("读取配置失败:", err)
	}
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	store := service.NewContentStore(service.ContentStoreOptions{
		ContentPath: cfg.ContentPath,
		UploadDir:   cfg.UploadDir,
		UploadURL:   cfg.UploadURLPath,
		Assets:      service.NewUploadAssetService(db.DB),
	})

	fmt.Println("开始生成演示内容...")

	doc, err := buildSampleContent(time.Now())
	if err != nil {
		log.Fatal("生成演示内容失败:", err)
	}
	saved, err := store.Save(doc)
	if err != nil {
		log.Fatal("保存演示内容失败:", err)
	}

	fmt.Println("演示内容生成完成！")
	fmt.Printf("游戏: %d 个\n", len(saved.Games))
	fmt.Printf("GG Productions 项目: %d 个\n", len(saved.GGProductions.Projects))
	fmt.Printf("内容文件: %s\n", cfg.ContentPath)
}

type sampleGame struct {
	name        string
	description string
	width       int
	height      int
	fill        color.RGBA
	screenshots int
	stores      []content.Link
}

var sampleGames = []sampleGame{
	{
		name:        "Moonlit Paws",
		description: "A stealth puzzler about a cat crew pulling one last heist across the rooftops.",
		width:       96,
		height:      54,
		fill:        color.RGBA{R: 38, G: 42, B: 92, A: 255},
		screenshots: 3,
		stores: []content.Link{
			{Label: "Steam", URL: "https://store.steampowered.com/"},
			{Label: "itch.io", URL: "https://itch.io/"},
		},
	},
	{
		name:        "Capy Courier",
		description: "Deliver parcels down a lazy river without waking the crocodiles.",
		width:       64,
		height:      64,
		fill:        color.RGBA{R: 164, G: 112, B: 60, A: 255},
		screenshots: 2,
		stores: []content.Link{
			{Label: "Google Play", URL: "https://play.google.com/"},
		},
	},
	{
		name:        "Tiny Tandoor",
		description: "A cooking rhythm game set in a street food stall.",
		width:       54,
		height:      96,
		fill:        color.RGBA{R: 208, G: 74, B: 36, A: 255},
		screenshots: 1,
	},
}

// buildSampleContent 在默认内容的基础上填充游戏、项目与客户 logo，
// 所有图片均以 data URI 形式内联。
func buildSampleContent(now time.Time) (*content.SiteContent, error) {
	doc := content.Defaults(now)

	for _, sample := range sampleGames {
		cover, err := samplePNG(sample.width, sample.height, sample.fill)
		if err != nil {
			return nil, err
		}
		game := content.Game{
			Name:        sample.name,
			Image:       cover,
			Description: sample.description,
			DevelopedBy: "Gattabara Games",
			WishlistOn:  sample.stores,
			FollowOn: []content.Link{
				{Label: "X", URL: "https://x.com/"},
			},
		}
		for i := 0; i < sample.screenshots; i++ {
			shot, err := samplePNG(sample.width*2, sample.height*2, shade(sample.fill, i+1))
			if err != nil {
				return nil, err
			}
			game.Screenshots = append(game.Screenshots, shot)
		}
		doc.Games = append(doc.Games, game)
	}

	gg := doc.GGProductionsOrDefault()
	gg.Projects = []content.Game{{
		Name:        "Festival Booth Kit",
		Description: "Co-development of a playable booth demo for a regional games festival.",
		DevelopedBy: "GG Productions",
	}}
	for i := 0; i < 4; i++ {
		logo, err := samplePNG(40, 20, shade(color.RGBA{R: 90, G: 90, B: 90, A: 255}, i))
		if err != nil {
			return nil, err
		}
		gg.ClientLogos = append(gg.ClientLogos, logo)
	}
	doc.GGProductions = &gg

	return doc, nil
}

func samplePNG(width, height int, fill color.RGBA) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// 对角条纹，方便在页面上区分不同图片
			if (x+y)%12 < 2 {
				img.Set(x, y, color.RGBA{R: 250, G: 245, B: 235, A: 255})
				continue
			}
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode sample png: %w", err)
	}
	return service.EncodeDataURI("image/png", buf.Bytes()), nil
}

func shade(base color.RGBA, step int) color.RGBA {
	lift := func(v uint8) uint8 {
		n := int(v) + step*24
		if n > 255 {
			return 255
		}
		return uint8(n)
	}
	return color.RGBA{R: lift(base.R), G: lift(base.G), B: lift(base.B), A: base.A}
}
