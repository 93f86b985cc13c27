package model

import "time"

// Read models returned by the query layer. JSON field names match the
// public API.

type FeedTweet struct {
	Username string    `json:"username"`
	Tweet    string    `json:"tweet"`
	DateTime time.Time `json:"dateTime"`
}

type TweetDetail struct {
	Tweet    string    `json:"tweet"`
	Likes    int       `json:"likes"`
	Replies  int       `json:"replies"`
	DateTime time.Time `json:"dateTime"`
}

// TweetSummary is one row of a user's own tweet listing.
type TweetSummary struct {
	TweetID  uint      `json:"tweetId"`
	Tweet    string    `json:"tweet"`
	Likes    int       `json:"likes"`
	Replies  int       `json:"replies"`
	DateTime time.Time `json:"dateTime"`
}

type ReplyView struct {
	Name  string `json:"name"`
	Reply string `json:"reply"`
}
