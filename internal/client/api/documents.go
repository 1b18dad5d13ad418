package api

import "github.com/dmitrijs2005/gophsocial/internal/client/graphql"

// Posts and users select __typename so the cache normalizes them. Likes,
// comments and applications do not: their ids are only unique within the
// parent, so they stay embedded in it.
const postFields = `
    __typename
    _id
    postText
    postAuthor
    createdAt
    image
    likes {
      _id
      likeCount
      likedBy
    }
    comments {
      _id
      commentText
      commentAuthor
      createdAt
    }`

var (
	LoginDoc = graphql.Document{Name: "login", Query: `
mutation login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    token
    user {
      __typename
      _id
      username
    }
  }
}`}

	AddUserDoc = graphql.Document{Name: "addUser", Query: `
mutation addUser($username: String!, $email: String!, $password: String!) {
  addUser(username: $username, email: $email, password: $password) {
    token
    user {
      __typename
      _id
      username
    }
  }
}`}

	MeDoc = graphql.Document{Name: "me", Query: `
query me {
  me {
    __typename
    _id
    username
    email
    firstName
    lastName
    about
    image
    applications {
      _id
      title
      appURL
      appImageURL
    }
    posts {` + postFields + `
    }
  }
}`}

	PostsDoc = graphql.Document{Name: "posts", Query: `
query posts {
  posts {` + postFields + `
  }
}`}

	UpdateProfileDoc = graphql.Document{Name: "updateProfile", Query: `
mutation updateProfile(
  $about: String!
  $image: String!
  $firstName: String!
  $lastName: String!
  $applicationData: ApplicationInput
) {
  updateProfile(
    about: $about
    image: $image
    firstName: $firstName
    lastName: $lastName
    applicationData: $applicationData
  ) {
    __typename
    _id
    about
    image
    firstName
    lastName
    applications {
      _id
      title
      appURL
      appImageURL
    }
  }
}`}

	AddPostDoc = graphql.Document{Name: "addPost", Query: `
mutation addPost($postText: String!, $image: String) {
  addPost(postText: $postText, image: $image) {` + postFields + `
  }
}`}

	RemovePostDoc = graphql.Document{Name: "removePost", Query: `
mutation removePost($postId: ID!) {
  removePost(postId: $postId) {
    __typename
    _id
  }
}`}

	AddCommentDoc = graphql.Document{Name: "addComment", Query: `
mutation addComment($postId: ID!, $commentText: String!) {
  addComment(postId: $postId, commentText: $commentText) {` + postFields + `
  }
}`}

	RemoveCommentDoc = graphql.Document{Name: "removeComment", Query: `
mutation removeComment($postId: ID!, $commentId: ID!) {
  removeComment(postId: $postId, commentId: $commentId) {` + postFields + `
  }
}`}

	AddLikeDoc = graphql.Document{Name: "addLike", Query: `
mutation addLike($postId: ID!, $likeCount: Int!) {
  addLike(postId: $postId, likeCount: $likeCount) {` + postFields + `
  }
}`}

	RemoveLikeDoc = graphql.Document{Name: "removeLike", Query: `
mutation removeLike($postId: ID!, $likeId: ID!) {
  removeLike(postId: $postId, likeId: $likeId) {` + postFields + `
  }
}`}

	RemoveApplicationDoc = graphql.Document{Name: "removeApplication", Query: `
mutation removeApplication($applicationId: ID!) {
  removeApplication(applicationId: $applicationId) {
    applications {
      _id
      title
      appURL
      appImageURL
    }
  }
}`}
)
