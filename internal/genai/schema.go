package genai

import "encoding/json"

// summarySchema constrains the model to the ManagementSummary shape.
// Field names must stay in sync with internal/models/summary.go.
var summarySchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "executiveSummary": {"type": "STRING"},
    "staffWorkload": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "staffName": {"type": "STRING"},
          "oneTimeTasks": {"type": "ARRAY", "items": {"type": "STRING"}},
          "recurringTasks": {"type": "ARRAY", "items": {"type": "STRING"}},
          "trainingTasks": {"type": "ARRAY", "items": {"type": "STRING"}},
          "currentlyWorkingOn": {"type": "STRING"},
          "unresolvedItems": {"type": "ARRAY", "items": {"type": "STRING"}},
          "totalHours": {"type": "NUMBER"},
          "effortByFrequency": {
            "type": "OBJECT",
            "properties": {
              "daily": {"type": "NUMBER"},
              "weekly": {"type": "NUMBER"},
              "monthly": {"type": "NUMBER"},
              "oneTime": {"type": "NUMBER"}
            },
            "required": ["daily", "weekly", "monthly", "oneTime"]
          }
        },
        "required": ["staffName", "oneTimeTasks", "recurringTasks", "trainingTasks", "currentlyWorkingOn", "unresolvedItems", "totalHours", "effortByFrequency"]
      }
    },
    "recurringTaskOverview": {"type": "STRING"},
    "trainingOverview": {"type": "STRING"},
    "blockersAndRisks": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "taskTitle": {"type": "STRING"},
          "owner": {"type": "STRING"},
          "reason": {"type": "STRING"}
        },
        "required": ["taskTitle", "owner", "reason"]
      }
    },
    "analytics": {
      "type": "OBJECT",
      "properties": {
        "totalTasks": {"type": "NUMBER"},
        "blockedCount": {"type": "NUMBER"},
        "overdueCount": {"type": "NUMBER"},
        "completionPercentage": {"type": "NUMBER"},
        "totalHoursLogged": {"type": "NUMBER"},
        "cadenceBreakdown": {
          "type": "OBJECT",
          "properties": {
            "dailyTotal": {"type": "NUMBER"},
            "weeklyTotal": {"type": "NUMBER"},
            "monthlyTotal": {"type": "NUMBER"},
            "oneTimeTotal": {"type": "NUMBER"}
          },
          "required": ["dailyTotal", "weeklyTotal", "monthlyTotal", "oneTimeTotal"]
        }
      },
      "required": ["totalTasks", "blockedCount", "overdueCount", "completionPercentage", "totalHoursLogged", "cadenceBreakdown"]
    }
  },
  "required": ["executiveSummary", "staffWorkload", "recurringTaskOverview", "trainingOverview", "blockersAndRisks", "analytics"]
}`)
