package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/service/impl"
	"github.com/Decentr-net/agora/internal/storage/postgres"
	"github.com/Decentr-net/agora/internal/token"
)

var opts = struct {
	Fixture            string `long:"fixture" env:"FIXTURE" default:"scripts/seed/fixture.json" description:"path to fixture"`
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}{}

type fixture struct {
	Admin struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Fullname string `json:"fullname"`
		Password string `json:"password"`
	} `json:"admin"`
	Categories []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"categories"`
	Users []struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Fullname string `json:"fullname"`
		Password string `json:"password"`
	} `json:"users"`
	Posts []struct {
		Author     string   `json:"author"`
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		Categories []string `json:"categories"`
		Comments   []struct {
			Author  string `json:"author"`
			Content string `json:"content"`
		} `json:"comments"`
		Likes []struct {
			Author string `json:"author"`
			Type   string `json:"type"`
		} `json:"likes"`
	} `json:"posts"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "seed"
	parser.LongDescription = "Seeds database with users, categories, posts, comments and likes"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("seed started")

	b, err := os.ReadFile(opts.Fixture)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read fixture")
	}

	var f fixture
	if err := json.Unmarshal(b, &f); err != nil {
		logrus.WithError(err).Fatal("failed to unmarshal fixture")
	}

	db := mustGetDB()

	policy, err := authz.New()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create authorization policy")
	}

	// nothing consumes events while seeding
	ps := notification.NewGoChannel(0)
	defer ps.Close() // nolint:errcheck

	srv := impl.New(postgres.New(db), policy, notification.NewPublisher(ps.Publisher),
		token.NewManager(token.Config{Secret: "seed", AccessTTL: time.Minute}))

	ctx := context.Background()

	// the very first admin is created on behalf of a system actor
	system := entities.Actor{Role: entities.AdminRole}

	logrus.Info("import admin")
	admin, err := srv.CreateUser(ctx, system, service.CreateUserParams{
		Login:           f.Admin.Login,
		Email:           f.Admin.Email,
		Fullname:        f.Admin.Fullname,
		Password:        f.Admin.Password,
		PasswordConfirm: f.Admin.Password,
		Role:            entities.AdminRole,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create admin")
	}
	actor := entities.Actor{ID: admin.ID, Role: admin.Role}

	actors := map[string]entities.Actor{admin.Login: actor}

	logrus.Info("import users")
	for _, v := range f.Users {
		u, err := srv.CreateUser(ctx, actor, service.CreateUserParams{
			Login:           v.Login,
			Email:           v.Email,
			Fullname:        v.Fullname,
			Password:        v.Password,
			PasswordConfirm: v.Password,
		})
		if err != nil {
			logrus.WithError(err).WithField("login", v.Login).Fatal("failed to put user into db")
		}
		actors[u.Login] = entities.Actor{ID: u.ID, Role: u.Role}
	}

	actorOf := func(login string) entities.Actor {
		if login == "" {
			return actor
		}
		a, ok := actors[login]
		if !ok {
			logrus.WithField("login", login).Fatal("unknown user in fixture")
		}
		return a
	}

	logrus.Info("import categories")
	for _, v := range f.Categories {
		_, err := srv.CreateCategory(ctx, actor, &entities.Category{Title: v.Title, Description: v.Description})
		switch {
		case err == nil:
		case errors.Is(err, service.ErrConflict):
			logrus.WithField("title", v.Title).Warn("category already exists")
		default:
			logrus.WithError(err).Fatal("failed to put category into db")
		}
	}

	logrus.Info("import posts")
	for i, v := range f.Posts {
		p, err := srv.CreatePost(ctx, actorOf(v.Author), service.CreatePostParams{
			Title:      v.Title,
			Content:    v.Content,
			Categories: v.Categories,
		})
		if err != nil {
			logrus.WithError(err).Fatal("failed to put post into db")
		}

		for _, c := range v.Comments {
			if _, err := srv.AddComment(ctx, actorOf(c.Author), p.ID, c.Content); err != nil {
				logrus.WithError(err).Fatal("failed to put comment into db")
			}
		}

		for _, l := range v.Likes {
			if _, err := srv.CreateLike(ctx, actorOf(l.Author), entities.PostTarget(p.ID), entities.LikeType(l.Type)); err != nil {
				logrus.WithError(err).Fatal("failed to put like into db")
			}
		}

		if i%20 == 0 {
			logrus.Infof("%d of %d posts imported", i+1, len(f.Posts))
		}
	}

	logrus.Info("done")
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
