// Command client is the terminal front end: it talks to the REST API,
// keeps the session in a local BoltDB file, and renders the grouped
// task list and dashboard numbers.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/pkg/analytics"
	"github.com/taskdeck/taskdeck/pkg/client"
	"github.com/taskdeck/taskdeck/pkg/localstore"
	"github.com/taskdeck/taskdeck/pkg/taskview"
)

const usage = `usage: client <command> [flags]

commands:
  register   create an account and start a session
  login      start a session
  logout     drop the stored session
  list       show tasks grouped by due date
  add        create a task
  update     partially update a task
  toggle     flip a task's completed flag
  rm         delete a task
  stats      show dashboard numbers
  theme      show or set the UI theme
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store, err := localstore.OpenBolt(cfg.Client.LocalStorePath)
	if err != nil {
		log.Fatalf("cannot open local store: %v", err)
	}
	defer store.Close()

	api := client.New(cfg.Client.ServerURL)
	session := client.NewSession(api, store)
	if err := session.Restore(); err != nil {
		log.Fatalf("session restore failed: %v", err)
	}

	if err := run(os.Args[1], os.Args[2:], api, session); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, api *client.Client, session *client.Session) error {
	switch command {
	case "register":
		return cmdRegister(args, session)
	case "login":
		return cmdLogin(args, session)
	case "logout":
		return session.Logout()
	case "list":
		return cmdList(args, api, session)
	case "add":
		return cmdAdd(args, api, session)
	case "update":
		return cmdUpdate(args, api, session)
	case "toggle":
		return cmdToggle(args, api, session)
	case "rm":
		return cmdRemove(args, api, session)
	case "stats":
		return cmdStats(api, session)
	case "theme":
		return cmdTheme(args, session)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func requireSession(session *client.Session) error {
	if !session.Authenticated() {
		return fmt.Errorf("not logged in; run `client login` first")
	}
	return nil
}

func cmdRegister(args []string, session *client.Session) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := session.Register(*name, *email, *password); err != nil {
		return err
	}
	fmt.Printf("registered as %s\n", session.User().Email)
	return nil
}

func cmdLogin(args []string, session *client.Session) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := session.Login(*email, *password); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", session.User().Email)
	return nil
}

func cmdList(args []string, api *client.Client, session *client.Session) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "substring match on title or description")
	priority := fs.String("priority", "all", "low|medium|high|all")
	status := fs.String("status", "all", "all|completed|pending")
	fs.Parse(args)

	if err := requireSession(session); err != nil {
		return err
	}
	tasks, err := api.ListTasks()
	if err != nil {
		return err
	}

	filtered := taskview.Filter(tasks, taskview.Query{
		Search:   *search,
		Priority: domain.Priority(*priority),
		Status:   taskview.StatusFilter(*status),
	})
	groups := taskview.Group(filtered, domain.Today())

	printGroup(taskview.BucketToday, groups.Today)
	printGroup(taskview.BucketThisWeek, groups.ThisWeek)
	printGroup(taskview.BucketThisMonth, groups.ThisMonth)
	printGroup(taskview.BucketLater, groups.Later)
	printGroup(taskview.BucketNoDate, groups.NoDate)
	return nil
}

func printGroup(bucket taskview.Bucket, tasks []domain.Task) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("%s\n", bucket)
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s  %s (%s)", mark, t.ID, t.Title, t.Priority)
		if t.DueDate != nil {
			line += "  due " + t.DueDate.String()
		}
		fmt.Println(line)
	}
}

func cmdAdd(args []string, api *client.Client, session *client.Session) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "task title (required)")
	desc := fs.String("desc", "", "description")
	due := fs.String("due", "", "due date, YYYY-MM-DD")
	priority := fs.String("priority", "", "low|medium|high (default medium)")
	fs.Parse(args)

	if err := requireSession(session); err != nil {
		return err
	}
	task, err := api.CreateTask(transport.TaskCreateRequest{
		Title:       *title,
		Description: *desc,
		DueDate:     *due,
		Priority:    *priority,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", task.ID)
	return nil
}

// cmdUpdate sends only the flags the user actually passed, so an
// untouched field keeps its stored value and `-due ""` clears the date.
func cmdUpdate(args []string, api *client.Client, session *client.Session) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	due := fs.String("due", "", `new due date, YYYY-MM-DD; "" clears it`)
	priority := fs.String("priority", "", "low|medium|high")
	completed := fs.Bool("completed", false, "completed flag")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: client update [flags] <task-id>")
	}
	if err := requireSession(session); err != nil {
		return err
	}

	var req transport.TaskUpdateRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "desc":
			req.Description = desc
		case "due":
			req.DueDate = due
		case "priority":
			req.Priority = priority
		case "completed":
			req.Completed = completed
		}
	})

	task, err := api.UpdateTask(fs.Arg(0), req)
	if err != nil {
		return err
	}
	fmt.Printf("updated %s\n", task.ID)
	return nil
}

func cmdToggle(args []string, api *client.Client, session *client.Session) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: client toggle <task-id>")
	}
	if err := requireSession(session); err != nil {
		return err
	}
	task, err := api.ToggleTask(args[0])
	if err != nil {
		return err
	}
	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Printf("%s is now %s\n", task.ID, state)
	return nil
}

func cmdRemove(args []string, api *client.Client, session *client.Session) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: client rm <task-id>")
	}
	if err := requireSession(session); err != nil {
		return err
	}
	if err := api.DeleteTask(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func cmdStats(api *client.Client, session *client.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	tasks, err := api.ListTasks()
	if err != nil {
		return err
	}

	today := domain.Today()
	summary := analytics.Summarize(tasks, today)

	fmt.Printf("total %d  completed %d  pending %d  high-priority %d\n",
		summary.Total, summary.Completed, summary.Pending, summary.HighPriorityPending)
	fmt.Printf("completion %d%%  due today %d", summary.CompletionPct, summary.DueToday)
	if summary.NextDue != nil {
		fmt.Printf("  next due %s", summary.NextDue)
	}
	fmt.Println()

	fmt.Println("last 7 days:")
	for _, point := range analytics.CompletionTrend(tasks, today) {
		fmt.Printf("  %s %s\n", point.Day, strings.Repeat("#", point.Completed))
	}
	return nil
}

func cmdTheme(args []string, session *client.Session) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	set := fs.String("set", "", "theme name to persist")
	fs.Parse(args)

	if *set != "" {
		if err := session.SetTheme(*set); err != nil {
			return err
		}
	}
	fmt.Println(session.Theme())
	return nil
}
