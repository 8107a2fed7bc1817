package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for tudu",
	Long:  `Display detailed help for all tudu commands and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				return fmt.Errorf("unknown help topic %q", args[0])
			}
			return target.Help()
		}
		showCustomHelp(cmd.OutOrStdout())
		return nil
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
████████╗██╗   ██╗██████╗ ██╗   ██╗
╚══██╔══╝██║   ██║██╔══██╗██║   ██║
   ██║   ██║   ██║██║  ██║██║   ██║
   ██║   ██║   ██║██║  ██║██║   ██║
   ██║   ╚██████╔╝██████╔╝╚██████╔╝
   ╚═╝    ╚═════╝ ╚═════╝  ╚═════╝

tudu - a terminal client for your task server

COMMANDS:

  ls                      List and manage tasks with interactive UI
    -s, --status          Filter by status: 0-4 or a name
    -p, --project         Filter by project id, or no-project
    --done / --open       Only completed / only open tasks
    --json                JSON output
    --no-ui               Simple text output

    Quick actions:
      ↑/↓           Navigate tasks
      ←/→           Change page
      enter         Task details
      space, d      Complete / reopen
      f             Filter by status or project
      o             Open in browser
      r             Reload
      esc/q         Quit

  add <task>              Create a new task with smart parsing
    -i, --interactive     Open the create form
    -p, --project         Project name or id
    -t, --tags            Comma-separated tags
    --priority            Priority: low|medium|high
    --due                 Due date (dd/mm/yyyy, yyyy-mm-dd, tomorrow, 3 days)
    --status              Initial status
    --note                Additional notes

    Smart syntax:
      #tags         Attach tags
      @project      Set project
      +priority     Set priority (low/medium/high)
      due:3days     Set due date

    Example:
      tudu add "Fix login bug #frontend @website +high due:tomorrow"

  done <id>               Mark task as completed
  undone <id>             Mark task as not started
  status <id> <status>    Set any status (0-4 or a name)
  archive <id>            Archive a task
  unarchive <id>          Move an archived task back to not started

  search <query>          Search tasks by name, note, project or tags
    --json                JSON output
    --limit               Maximum number of results

  open <id|uid>           Open a task in the browser
    --print               Only print the link

  projects                List projects and their ids
  tags                    List tags
  history                 Show recent changes sent to the server
    --limit               Number of entries
    --task                Only one task

  config init             Write ~/.tudu/config.yaml
  config show             Print the effective configuration
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config <path>         Use another config file
  -v, --verbose           Debug logging
  --log-file <path>       Write logs to a file

Settings can also come from TUDU_API_URL, TUDU_EMAIL and TUDU_PASSWORD.

`)
}
